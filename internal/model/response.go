package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AuthRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

type AuthMeResponse struct {
	LoginID string `json:"loginId"`
}

type AnalyzeResponse struct {
	Status     string         `json:"status"`
	Sample     AnalysisSample `json:"sample"`
	IssueCount int            `json:"issueCount"`
}

type MetricsResponse struct {
	Status string   `json:"status"`
	Range  string   `json:"range"`
	Data   []Sample `json:"data"`
}

type AlertListResponse struct {
	Status string        `json:"status"`
	Data   []AlertRecord `json:"data"`
}

type ReportResponse struct {
	Status string  `json:"status"`
	Data   *Report `json:"data"`
}

type PushWebhookResponse struct {
	Status    string `json:"status"`
	FileCount int    `json:"fileCount"`
	Queued    int    `json:"queued"`
}
