package dto

// Envelope es la forma uniforme de todas las respuestas HTTP.
type Envelope struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// List agrega count al sobre.
func List[T any](items []T) Envelope {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return Envelope{Success: true, Count: &n, Data: items}
}

func Fail(message string, err error) Envelope {
	env := Envelope{Success: false, Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	return env
}
