package backend

// Envelope is implemented by every decoded backend response. The backend reports
// success as either `success` or `isSuccess`; responses that carry neither flag are
// plain payloads and count as successful.
type Envelope interface {
	Succeeded() bool
	ServerMessage() string
}

// Status is embedded in response types to satisfy Envelope.
type Status struct {
	Success   *bool  `json:"success,omitempty"`
	IsSuccess *bool  `json:"isSuccess,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Succeeded reports the backend's success flag.
func (s Status) Succeeded() bool {
	if s.Success != nil {
		return *s.Success
	}
	if s.IsSuccess != nil {
		return *s.IsSuccess
	}
	return true
}

// ServerMessage prefers the `error` field over `message`.
func (s Status) ServerMessage() string {
	if s.Error != "" {
		return s.Error
	}
	return s.Message
}

// Ack is the response of calls whose payload the console ignores.
type Ack struct {
	Status
}

// DataResponse wraps payloads delivered under `data`.
type DataResponse[T any] struct {
	Status
	Data T `json:"data"`
}
