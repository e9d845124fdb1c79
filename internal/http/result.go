package httpapi

// Response API 공통 응답 포맷
// {success: bool, data?: object, error?: string, message?: string}
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func Ok(data any) Response {
	return Response{Success: true, Data: data}
}

func OkMessage(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

func Fail(message string) Response {
	return Response{Success: false, Error: message}
}
