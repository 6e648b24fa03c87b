package documents

// uploadResponse wraps the created document with extraction status so
// the client can warn about scanned PDFs immediately.
type uploadResponse struct {
	Document Document `json:"document"`
	HasText  bool     `json:"hasText"`
	Warning  string   `json:"warning,omitempty"`
}

const noTextWarning = "No readable text found in PDF. AI features may not work for scanned/image PDFs."

func toUploadResponse(doc Document) uploadResponse {
	resp := uploadResponse{
		Document: doc,
		HasText:  doc.HasText(),
	}
	if !resp.HasText {
		resp.Warning = noTextWarning
	}
	return resp
}
