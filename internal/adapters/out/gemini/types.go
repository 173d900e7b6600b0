package gemini

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type GenerateRequest struct {
	Contents []content `json:"contents"`
}

func NewGenerateRequest(prompt string) GenerateRequest {
	return GenerateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// firstText returns candidates[0].content.parts[0].text.
func (r generateResponse) firstText() (string, bool) {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	return r.Candidates[0].Content.Parts[0].Text, true
}
