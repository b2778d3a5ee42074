package internal

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"mood-chat/contract"
)

//go:embed inspect.html
var templatesFS embed.FS

var _ contract.Worker = (*OpsServer)(nil)

// InspectRow is one rendered store entry on the inspect page.
type InspectRow struct {
	Key    string
	Sender string
	Kind   string
	Seq    string
	At     string
	Detail string
}

// StatsProvider feeds the dashboard header; the server composes system and
// engine figures from it on every request.
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// OpsServer exposes the conversation store and live engine figures over
// HTTP for operators. Read-only; it never writes to the database. Runs as a
// supervised worker so a crash restarts it like any other component.
type OpsServer struct {
	db    *badger.DB
	addr  string
	stats StatsProvider
}

func NewOpsServer(db *badger.DB, port int, stats StatsProvider) *OpsServer {
	return &OpsServer{db: db, addr: fmt.Sprintf("0.0.0.0:%d", port), stats: stats}
}

func (s *OpsServer) Run(ctx context.Context) error {
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	mux := http.NewServeMux()
	mux.HandleFunc("/inspect", func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "msg:"
		}
		data := PageData{Prefix: prefix, Stats: s.collectStats()}
		data.Items = s.scan(prefix)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})
	mux.HandleFunc("/stats.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.collectStats())
	})

	server := &http.Server{Addr: s.addr, Handler: mux}
	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

func (s *OpsServer) collectStats() map[string]any {
	stats := SystemStats()
	if s.stats != nil {
		for k, v := range s.stats() {
			stats[k] = v
		}
	}
	return stats
}

func (s *OpsServer) scan(prefix string) []InspectRow {
	var rows []InspectRow
	_ = s.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(prefix)
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			item := it.Item()
			_ = item.Value(func(val []byte) error {
				rows = append(rows, mapRow(string(item.Key()), val))
				return nil
			})
		}
		return nil
	})
	return rows
}

// mapRow renders a "msg:{conversation}:{seq}" entry; any other key falls
// back to a raw size row.
func mapRow(key string, val []byte) InspectRow {
	row := InspectRow{
		Key:    key,
		Kind:   "RAW",
		Sender: "--------",
		Seq:    "-",
		At:     "--:--:--",
		Detail: "Size: " + strconv.Itoa(len(val)) + " bytes",
	}
	if !strings.HasPrefix(key, "msg:") {
		return row
	}

	var record struct {
		Seq     uint64 `json:"seq"`
		Sender  string `json:"sender"`
		At      int64  `json:"at"`
		Payload struct {
			Kind string `json:"kind"`
			Body string `json:"body"`
			URL  string `json:"url"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(val, &record); err != nil {
		return row
	}

	row.Kind = record.Payload.Kind
	row.Sender = record.Sender
	row.Seq = strconv.FormatUint(record.Seq, 10)
	row.At = time.Unix(0, record.At).Format("15:04:05")
	switch {
	case record.Payload.Body != "":
		row.Detail = record.Payload.Body
	case record.Payload.URL != "":
		row.Detail = record.Payload.URL
	}
	return row
}
