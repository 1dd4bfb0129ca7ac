package dto

// GeminiAPIRequest is the request body for the generateContent endpoint.
type GeminiAPIRequest struct {
	Contents []Content `json:"contents"`
}

// Content is a single message in a Gemini request.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a single text part of a Gemini message.
type Part struct {
	Text string `json:"text"`
}

// GeminiAPIResponse is the response body from the generateContent endpoint.
type GeminiAPIResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
