package http

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"betogether-admin/internal/console/domain/model"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// isMultipart reports whether the request carries a multipart form.
func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

// parseTags reads a tag field sent either as a JSON array or as a comma-separated list.
func parseTags(raw string) (model.TagSet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.TagSet{}, nil
	}
	if strings.HasPrefix(raw, "[") {
		var tags model.TagSet
		if err := sonic.UnmarshalString(raw, &tags); err != nil {
			return nil, err
		}
		return tags, nil
	}
	return model.NewTagSet(strings.Split(raw, ",")...), nil
}

// upload reads the named file field. A missing file is not an error.
func upload(c *fiber.Ctx, field string) (*model.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &model.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Content:     content,
	}, nil
}

// parseCategoryForm accepts the category form as multipart (with an optional
// image) or as JSON.
func parseCategoryForm(c *fiber.Ctx) (model.CategoryInput, error) {
	var in model.CategoryInput
	if !isMultipart(c) {
		err := c.BodyParser(&in)
		return in, err
	}

	tags, err := parseTags(c.FormValue("tags"))
	if err != nil {
		return in, err
	}
	in.Name = c.FormValue("name")
	in.Tags = tags
	in.Image, err = upload(c, "image")
	return in, err
}

// parseServiceForm accepts the edit-service form as multipart or JSON. Nested
// multipart fields are JSON strings.
func parseServiceForm(c *fiber.Ctx) (*model.ServiceInput, error) {
	in := &model.ServiceInput{}
	if !isMultipart(c) {
		err := c.BodyParser(in)
		return in, err
	}

	var err error
	in.Title = c.FormValue("title")
	in.Description = c.FormValue("description")
	in.Language = c.FormValue("language")
	in.City = c.FormValue("city")
	in.ScheduleType = c.FormValue("scheduleType")
	in.Date = c.FormValue("date")
	in.StartTime = c.FormValue("startTime")
	in.EndTime = c.FormValue("endTime")
	in.IsFree = formBool(c.FormValue("isFree"))
	in.IsDoorstepService = formBool(c.FormValue("isDoorstepService"))
	if in.Price, err = formFloat(c.FormValue("price")); err != nil {
		return nil, err
	}
	if in.MaxParticipants, err = formInt(c.FormValue("maxParticipants")); err != nil {
		return nil, err
	}
	if in.Tags, err = parseTags(c.FormValue("tags")); err != nil {
		return nil, err
	}
	if days, err := parseTags(c.FormValue("recurringDays")); err != nil {
		return nil, err
	} else if len(days) > 0 {
		in.RecurringDays = days.Strings()
	}
	if raw := strings.TrimSpace(c.FormValue("location")); raw != "" {
		in.Location = &model.Location{}
		if err := sonic.UnmarshalString(raw, in.Location); err != nil {
			return nil, err
		}
	}
	in.Image, err = upload(c, "image")
	return in, err
}

func formBool(v string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(v))
	return b
}

func formFloat(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

func formInt(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
