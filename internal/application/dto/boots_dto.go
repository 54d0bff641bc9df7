package dto

// BootsRequest consulta al asistente de IA.
type BootsRequest struct {
	Prompt string `json:"prompt"`
}

// BootsResponse respuesta del asistente más el uso del período.
type BootsResponse struct {
	Answer      string `json:"answer"`
	TokensUsed  int    `json:"tokens_used"`
	UsedInCycle int    `json:"used_in_cycle"`
}
