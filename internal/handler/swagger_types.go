package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// TokenRequest represents the client-credentials token request body.
type TokenRequest struct {
	ClientID     string `json:"client_id" binding:"required" example:"bizcardx-web"`
	ClientSecret string `json:"client_secret" binding:"required" example:"s3cret"`
}

// UpdateCardRequest represents the full replacement of a card's fields.
// Every key is required; values may be empty strings.
type UpdateCardRequest struct {
	CompanyName string `json:"company_name" example:"Selva Digitals"`
	Name        string `json:"name" example:"Jane Doe"`
	Designation string `json:"designation" example:"Data Manager"`
	PhoneNumber string `json:"phone_number" example:"+123-456-7890"`
	Email       string `json:"email" example:"jane@selvadigitals.com"`
	Website     string `json:"website" example:"www.selvadigitals.com"`
	Address     string `json:"address" example:"123 ABC St, Chennai"`
	State       string `json:"state" example:"TamilNadu"`
	Pincode     string `json:"pincode" example:"600113"`
}

// DetectionRequest is one OCR detection supplied by the caller.
type DetectionRequest struct {
	Text       string       `json:"text" example:"Jane Doe"`
	Box        [][2]float64 `json:"box,omitempty"`
	Confidence float64      `json:"confidence" example:"0.93"`
}

// DetectionsRequest represents the body of the detections extraction endpoint.
type DetectionsRequest struct {
	ImageBase64 string             `json:"image_base64,omitempty" example:"iVBORw0KGgo..."`
	Detections  []DetectionRequest `json:"detections"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"card deleted"`
}

// ImageURLResponse carries a presigned URL for the archived card image.
type ImageURLResponse struct {
	URL string `json:"url" example:"https://bizcardx-cards.s3.amazonaws.com/cards/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
