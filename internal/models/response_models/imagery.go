package response_models

type ImageURLResponse struct {
	ImageURL string `json:"imageUrl"`
	Source   string `json:"source"`
}

type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}
