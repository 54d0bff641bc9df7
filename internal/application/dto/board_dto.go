package dto

import "time"

// CreateBoardRequest alta de board.
type CreateBoardRequest struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

// BoardResponse vista de board.
type BoardResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BoardListResponse listado de boards.
type BoardListResponse struct {
	Items []BoardResponse `json:"items"`
}

// CreateColumnRequest alta de columna en un board.
type CreateColumnRequest struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// ColumnResponse vista de columna.
type ColumnResponse struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}
