package model

import (
	"strings"

	"github.com/bytedance/sonic"
)

// TagSet is an ordered set of tags. Adding a tag that is already present is a no-op.
type TagSet []string

// NewTagSet builds a set from tags, dropping blanks and duplicates while keeping the
// first occurrence order.
func NewTagSet(tags ...string) TagSet {
	out := make(TagSet, 0, len(tags))
	for _, t := range tags {
		out = out.Add(t)
	}
	return out
}

// Contains reports whether tag is in the set.
func (s TagSet) Contains(tag string) bool {
	for _, t := range s {
		if t == tag {
			return true
		}
	}
	return false
}

// Add returns the set with tag appended. The tag is trimmed; blank or present tags
// leave the set unchanged.
func (s TagSet) Add(tag string) TagSet {
	tag = strings.TrimSpace(tag)
	if tag == "" || s.Contains(tag) {
		return s
	}
	out := make(TagSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, tag)
}

// Remove returns the set without tag.
func (s TagSet) Remove(tag string) TagSet {
	out := make(TagSet, 0, len(s))
	for _, t := range s {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

// ReplaceBatch drops every tag of the previous batch and adds the next one. Tags
// entered by hand survive unless they were part of the previous batch.
func (s TagSet) ReplaceBatch(previous, next []string) TagSet {
	drop := NewTagSet(previous...)
	out := make(TagSet, 0, len(s)+len(next))
	for _, t := range s {
		if !drop.Contains(t) {
			out = append(out, t)
		}
	}
	for _, t := range next {
		out = out.Add(t)
	}
	return out
}

// Strings returns a copy of the tags as a plain slice, never nil.
func (s TagSet) Strings() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// MarshalJSON always encodes an array.
func (s TagSet) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(s.Strings())
}

// UnmarshalJSON accepts a JSON array, a string holding a JSON-encoded array, a comma
// separated string, or null.
func (s *TagSet) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		*s = TagSet{}
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := sonic.UnmarshalString(raw, &list); err != nil {
			return err
		}
		*s = NewTagSet(list...)
		return nil
	}

	var str string
	if err := sonic.UnmarshalString(raw, &str); err != nil {
		return err
	}
	str = strings.TrimSpace(str)
	if strings.HasPrefix(str, "[") {
		var list []string
		if err := sonic.UnmarshalString(str, &list); err != nil {
			return err
		}
		*s = NewTagSet(list...)
		return nil
	}
	*s = NewTagSet(strings.Split(str, ",")...)
	return nil
}
