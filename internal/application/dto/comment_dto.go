package dto

import "time"

// CreateCommentRequest comentario sobre una tarea.
type CreateCommentRequest struct {
	TaskID string `json:"task_id"`
	Body   string `json:"body"`
}

// CommentResponse vista de comentario.
type CommentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentListResponse comentarios de una tarea.
type CommentListResponse struct {
	Items []CommentResponse `json:"items"`
}
