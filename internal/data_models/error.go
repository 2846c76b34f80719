package dto

type ErrorDetail struct {
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

type ErrorResponse struct {
	Detail []ErrorDetail `json:"detail"`
}

func NewErrorResponse(msg, kind string) ErrorResponse {
	return ErrorResponse{Detail: []ErrorDetail{{Msg: msg, Type: kind}}}
}
