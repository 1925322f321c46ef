package get

import (
	"net/http"

	"github.com/a-h/gqlchat"
	"github.com/a-h/respond"
)

func New(models []string) Handler {
	return Handler{
		models: models,
	}
}

type Handler struct {
	models []string
}

type Response struct {
	Status  string   `json:"status"`
	Version string   `json:"version"`
	Models  []string `json:"models"`
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, Response{
		Status:  "ok",
		Version: gqlchat.Version,
		Models:  h.models,
	}, http.StatusOK)
}
