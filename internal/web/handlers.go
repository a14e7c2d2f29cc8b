package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KaramelBytes/dockfinder-cli/internal/dataset"
	"github.com/KaramelBytes/dockfinder-cli/internal/grid"
	"github.com/KaramelBytes/dockfinder-cli/internal/loader"
	"github.com/KaramelBytes/dockfinder-cli/internal/pipeline"
)

type pageData struct {
	Title        string
	Source       string
	Summary      string
	SummaryState string
	Error        string
	Grid         *gridData
}

type columnData struct {
	Index    int
	Name     string
	Filter   string
	Position int
	SortDir  string
}

type gridData struct {
	ViewID  string
	Query   string
	Order   string
	Columns []columnData
	Hidden  []columnData
	Rows    [][]dataset.Cell
	Shown   int
	Total   int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.LoadTimeout)
	defer cancel()

	page := pageData{Title: "Listings", Source: s.cfg.Source}
	res, err := pipeline.Run(ctx, s.fetcher, s.cfg.Source, s.cfg.Pipeline, pipeline.Callbacks{
		OnSummary: func(sum dataset.Summary) {
			page.Summary = sum.Text()
			page.SummaryState = sum.State.String()
		},
	})
	if err != nil {
		s.log.Warn().Err(err).Str("source", s.cfg.Source).Msg("page load failed")
		page.Error = err.Error()
		s.render(w, r, http.StatusBadGateway, "page.html", page)
		return
	}
	v := s.views.Put(res.Dataset, res.Summary, res.State)
	s.log.Debug().Str("view", v.ID).Int("rows", res.Dataset.Len()).Msg("view loaded")
	page.Grid = buildGrid(v, stateFromQuery(v.Default, r.URL.Query()))
	s.render(w, r, http.StatusOK, "page.html", page)
}

func (s *Server) lookupView(w http.ResponseWriter, r *http.Request) (*View, grid.State, bool) {
	v, ok := s.views.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "view expired, reload the page", http.StatusGone)
		return nil, grid.State{}, false
	}
	return v, stateFromQuery(v.Default, r.URL.Query()), true
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	v, st, ok := s.lookupView(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, "grid.html", buildGrid(v, st))
}

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	v, st, ok := s.lookupView(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, "rows.html", buildGrid(v, st))
}

type summaryResponse struct {
	Source string `json:"source"`
	State  string `json:"state"`
	Text   string `json:"text"`
	Column int    `json:"column"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"error_kind,omitempty"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.LoadTimeout)
	defer cancel()

	resp := summaryResponse{Source: s.cfg.Source, Column: -1}
	status := http.StatusOK
	res, err := pipeline.Run(ctx, s.fetcher, s.cfg.Source, s.cfg.Pipeline, pipeline.Callbacks{})
	if err != nil {
		sum := dataset.Summary{State: dataset.SummaryFailed, Err: err}
		resp.State, resp.Text, resp.Error = sum.State.String(), sum.Text(), err.Error()
		var fe *loader.FetchError
		var pe *dataset.ParseError
		switch {
		case errors.As(err, &fe):
			resp.Kind = string(fe.Kind)
		case errors.As(err, &pe):
			resp.Kind = "parse"
		}
		status = http.StatusBadGateway
	} else {
		resp.State = res.Summary.State.String()
		resp.Text = res.Summary.Text()
		resp.Column = res.Summary.Column
		resp.Count = res.Summary.Count
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Debug().Err(err).Msg("encode summary")
	}
}

type healthResponse struct {
	Status       string     `json:"status"`
	Views        int        `json:"views"`
	LastLoadedAt *time.Time `json:"last_loaded_at,omitempty"`
	LastSummary  string     `json:"last_summary,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Views: s.views.Len()}
	if v, ok := s.views.Latest(); ok {
		at := v.LoadedAt
		resp.LastLoadedAt = &at
		resp.LastSummary = v.Summary.Text()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func buildGrid(v *View, st grid.State) *gridData {
	f := grid.Build(v.Dataset, st).Frame()
	g := &gridData{
		ViewID: v.ID,
		Query:  encodeState(st).Encode(),
		Order:  joinInts(st.Order),
		Rows:   f.Rows,
		Shown:  len(f.Rows),
		Total:  f.Total,
	}
	for _, fc := range f.Columns {
		cd := columnData{Index: fc.Index, Name: fc.Name, Filter: st.Filter(fc.Index), Position: st.DisplayPosition(fc.Index)}
		if fc.Index == st.SortCol {
			cd.SortDir = st.SortDir.String()
		}
		g.Columns = append(g.Columns, cd)
	}
	for _, c := range st.HiddenColumns() {
		g.Hidden = append(g.Hidden, columnData{Index: c, Name: v.Dataset.Header[c], Filter: st.Filter(c)})
	}
	return g
}
