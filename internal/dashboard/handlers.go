package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alfredjeanlab/cafedash/internal/client"
	"github.com/alfredjeanlab/cafedash/internal/model"
	"github.com/alfredjeanlab/cafedash/internal/pages"
	"github.com/alfredjeanlab/cafedash/internal/tableview"
)

type columnJSON struct {
	Field  string `json:"field"`
	Title  string `json:"title"`
	Status bool   `json:"status,omitempty"`
}

type filterJSON struct {
	Param   string   `json:"param"`
	Field   string   `json:"field"`
	Options []string `json:"options,omitempty"`
}

type pageInfo struct {
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Columns      []columnJSON `json:"columns"`
	Filters      []filterJSON `json:"filters,omitempty"`
	DefaultSort  string       `json:"default_sort"`
	CounterField string       `json:"counter_field,omitempty"`
}

func describe(p *pages.Page) pageInfo {
	info := pageInfo{Name: p.Name, Title: p.Title, DefaultSort: p.DefaultSort, CounterField: p.CounterField}
	for _, c := range p.Columns {
		info.Columns = append(info.Columns, columnJSON{Field: c.Field, Title: c.Title, Status: c.Status})
	}
	for _, f := range p.Filters {
		info.Filters = append(info.Filters, filterJSON{Param: pages.FilterPrefix + f.Param, Field: f.Field, Options: f.Options})
	}
	return info
}

// pageResponse is one page of a list view plus the counter tally.
type pageResponse struct {
	Page string `json:"page"`
	Sort string `json:"sort"`
	tableview.PageResult
	Counts []tableview.Count `json:"counts,omitempty"`
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleListPages handles GET /api/pages.
func (s *Server) handleListPages(c *gin.Context) {
	all := pages.All()
	out := make([]pageInfo, len(all))
	for i, p := range all {
		out[i] = describe(p)
	}
	c.JSON(http.StatusOK, gin.H{"pages": out})
}

// handleGetPage handles GET /api/pages/:name.
func (s *Server) handleGetPage(c *gin.Context) {
	p, ok := pages.Lookup(c.Param("name"))
	if !ok {
		writeError(c, http.StatusNotFound, "unknown page "+c.Param("name"))
		return
	}

	sess, err := callerSession(c)
	if err != nil {
		writeError(c, http.StatusUnauthorized, client.MsgUnauthorized)
		return
	}
	if !p.Allowed(model.Role(sess.Role)) {
		writeError(c, http.StatusForbidden, client.MsgForbidden)
		return
	}

	q, err := pages.ParseQuery(c.Request.URL.Query(), s.opts.PageSize)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := p.BuildFilter(q); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	cc := s.clients(sess)
	defer cc.Close()

	tbl, err := pages.Open(c.Request.Context(), cc, p, q, s.opts.MaxPages)
	if err != nil {
		s.logger.Warn("page load failed", "page", p.Name, "error", err, "request_id", c.GetString(ctxRequestID))
		writeError(c, upstreamStatus(err), client.Localize(err))
		return
	}

	c.JSON(http.StatusOK, pageResponse{
		Page:       p.Name,
		Sort:       tbl.View.Sort().String(),
		PageResult: tbl.Result(),
		Counts:     tbl.Counts(),
	})
}

// upstreamStatus passes through auth and not-found statuses from the remote
// API and reports everything else as a bad gateway.
func upstreamStatus(err error) int {
	switch code := client.StatusCode(err); code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return code
	}
	return http.StatusBadGateway
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
