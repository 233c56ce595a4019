package fixture

import (
	jsoniter "github.com/json-iterator/go"
	"log/slog"
	"net/http"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type GetSnapshotHandler struct {
	store *Store
}

func (h GetSnapshotHandler) ServeHTTP(writer http.ResponseWriter, _ *http.Request) {
	entries := h.store.Get()

	respBody, err := json.Marshal(entries)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.Header().Set("Cache-Control", "no-store")
	if _, err = writer.Write(respBody); err != nil {
		slog.Error("Failed to respond", "entries", len(entries), "err", err)
	}
}

type PutSnapshotHandler struct {
	store *Store
}

func (h PutSnapshotHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	var entries []Entry
	if err := json.NewDecoder(request.Body).Decode(&entries); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	h.store.Put(entries)
	slog.Info("Snapshot replaced", "entries", len(entries))
	writer.WriteHeader(http.StatusNoContent)
}

func NewHandler(store *Store) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /data", &GetSnapshotHandler{store: store})
	mux.Handle("PUT /data", &PutSnapshotHandler{store: store})

	return mux
}
