package models

// ChatRequest is the body posted to the chat endpoint.
type ChatRequest struct {
	Question string `json:"question"`
	FileID   string `json:"fileId"`
}

// ChatResponse carries the answering service's reply.
type ChatResponse struct {
	Answer string `json:"answer"`
}
