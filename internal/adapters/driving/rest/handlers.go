package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// memberHeader identifies the member that owns favorites.
const memberHeader = "X-Member-ID"

type stationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type pathResponse struct {
	Stations  []stationResponse `json:"stations"`
	Distance  int               `json:"distance"`
	Surcharge int               `json:"surcharge"`
	Fare      int               `json:"fare"`
}

type sectionResponse struct {
	UpStationID   string `json:"upStationId"`
	DownStationID string `json:"downStationId"`
	Distance      int    `json:"distance"`
}

type lineResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Color     string            `json:"color"`
	Surcharge int               `json:"surcharge"`
	Distance  int               `json:"distance"`
	Stations  []stationResponse `json:"stations"`
	Sections  []sectionResponse `json:"sections"`
}

type sectionRequest struct {
	UpStationID   string `json:"upStationId"`
	DownStationID string `json:"downStationId"`
	Distance      int    `json:"distance"`
}

type favoriteRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type favoriteResponse struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

func toStationResponses(stations []domain.Station) []stationResponse {
	out := make([]stationResponse, len(stations))
	for i, st := range stations {
		out[i] = stationResponse{ID: st.ID.String(), Name: st.Name}
	}
	return out
}

func toFavoriteResponse(f domain.Favorite) favoriteResponse {
	return favoriteResponse{ID: f.ID, Source: f.SourceID.String(), Target: f.TargetID.String()}
}

func (s *Server) handleFindPath(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var opts domain.PathOptions
	if raw := query.Get("age"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: age %q", domain.ErrInvalidInput, raw))
			return
		}
		opts.Age = age
	}

	source, err := s.resolveStation(ctx, query.Get("source"))
	if err != nil {
		writeError(w, err)
		return
	}
	target, err := s.resolveStation(ctx, query.Get("target"))
	if err != nil {
		writeError(w, err)
		return
	}

	route, err := s.ports.Path.FindPath(ctx, source, target, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pathResponse{
		Stations:  toStationResponses(route.Stations),
		Distance:  route.Distance,
		Surcharge: route.Surcharge,
		Fare:      route.Fare,
	})
}

func (s *Server) handleListStations(w http.ResponseWriter, r *http.Request) {
	if s.ports.Station == nil {
		writeError(w, domain.ErrNotImplemented)
		return
	}
	stations, err := s.ports.Station.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStationResponses(stations))
}

func (s *Server) handleListLines(w http.ResponseWriter, r *http.Request) {
	if s.ports.Line == nil {
		writeError(w, domain.ErrNotImplemented)
		return
	}
	ctx := r.Context()
	lines, err := s.ports.Line.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]lineResponse, 0, len(lines))
	for _, line := range lines {
		resp, err := s.lineResponse(ctx, line)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetLine(w http.ResponseWriter, r *http.Request) {
	line, err := s.resolveLine(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeLine(w, r.Context(), http.StatusOK, line)
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	line, err := s.resolveLine(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req sectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: request body: %v", domain.ErrInvalidInput, err))
		return
	}

	ctx := r.Context()
	up, err := s.resolveStation(ctx, req.UpStationID)
	if err != nil {
		writeError(w, err)
		return
	}
	down, err := s.resolveStation(ctx, req.DownStationID)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := s.ports.Line.AddSection(ctx, line.ID, up, down, req.Distance)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeLine(w, ctx, http.StatusOK, updated)
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	line, err := s.resolveLine(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	station, err := s.resolveStation(ctx, r.URL.Query().Get("stationId"))
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := s.ports.Line.DeleteStation(ctx, line.ID, station); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	if s.ports.Favorite == nil {
		writeError(w, domain.ErrNotImplemented)
		return
	}
	favorites, err := s.ports.Favorite.List(r.Context(), r.Header.Get(memberHeader))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]favoriteResponse, len(favorites))
	for i, f := range favorites {
		out[i] = toFavoriteResponse(f)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	if s.ports.Favorite == nil {
		writeError(w, domain.ErrNotImplemented)
		return
	}

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: request body: %v", domain.ErrInvalidInput, err))
		return
	}

	ctx := r.Context()
	source, err := s.resolveStation(ctx, req.Source)
	if err != nil {
		writeError(w, err)
		return
	}
	target, err := s.resolveStation(ctx, req.Target)
	if err != nil {
		writeError(w, err)
		return
	}

	favorite, err := s.ports.Favorite.Add(ctx, r.Header.Get(memberHeader), source, target)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/favorites/"+favorite.ID)
	writeJSON(w, http.StatusCreated, toFavoriteResponse(*favorite))
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if s.ports.Favorite == nil {
		writeError(w, domain.ErrNotImplemented)
		return
	}
	id := mux.Vars(r)["id"]
	if err := s.ports.Favorite.Remove(r.Context(), r.Header.Get(memberHeader), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolveStation maps a request value to a station ID, accepting names when
// the station port is available.
func (s *Server) resolveStation(ctx context.Context, idOrName string) (domain.StationID, error) {
	if idOrName == "" {
		return "", fmt.Errorf("%w: station is required", domain.ErrInvalidInput)
	}
	if s.ports.Station == nil {
		return domain.StationID(idOrName), nil
	}
	station, err := s.ports.Station.Resolve(ctx, idOrName)
	if err != nil {
		return "", err
	}
	return station.ID, nil
}

func (s *Server) resolveLine(r *http.Request) (*domain.Line, error) {
	if s.ports.Line == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.ports.Line.Resolve(r.Context(), mux.Vars(r)["id"])
}

func (s *Server) writeLine(w http.ResponseWriter, ctx context.Context, status int, line *domain.Line) {
	resp, err := s.lineResponse(ctx, line)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, resp)
}

func (s *Server) lineResponse(ctx context.Context, line *domain.Line) (lineResponse, error) {
	stations, err := s.ports.Line.Stations(ctx, line.ID)
	if err != nil {
		return lineResponse{}, err
	}

	sections := line.Sections()
	out := lineResponse{
		ID:        line.ID.String(),
		Name:      line.Name,
		Color:     line.Color,
		Surcharge: line.Surcharge,
		Distance:  line.TotalDistance(),
		Stations:  toStationResponses(stations),
		Sections:  make([]sectionResponse, len(sections)),
	}
	for i, sec := range sections {
		out.Sections[i] = sectionResponse{
			UpStationID:   sec.UpStationID.String(),
			DownStationID: sec.DownStationID.String(),
			Distance:      sec.Distance,
		}
	}
	return out, nil
}
