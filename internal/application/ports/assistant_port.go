package ports

import "context"

// AssistantReply respuesta del asistente con el costo en tokens reportado por
// el proveedor (se persiste en el log de boots).
type AssistantReply struct {
	Answer     string
	TokensUsed int
}

// AssistantService puerto de salida hacia el proveedor de IA del asistente
// (boots). Cualquier adaptador (Anthropic, mock) implementa esta interfaz; la
// aplicación solo conoce el contrato. El contexto debe llevar timeout: las
// llamadas a LLMs pueden demorar varios segundos.
type AssistantService interface {
	Complete(ctx context.Context, prompt string) (*AssistantReply, error)
}
