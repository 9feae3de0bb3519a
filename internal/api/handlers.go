package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"refbooks/internal/refbook"
)

type directoryOut struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type elementOut struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

func toElementsOut(elems []refbook.Element) []elementOut {
	out := make([]elementOut, 0, len(elems))
	for _, e := range elems {
		out = append(out, elementOut{Code: e.Code, Value: e.Value})
	}
	return out
}

// GET /refbooks/?date=YYYY-MM-DD
func DirectoryListHandler(svc *refbook.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ferrs := parseDirectoryListParams(c.Request.URL.Query())
		if ferrs != nil {
			c.JSON(http.StatusBadRequest, ferrs)
			return
		}

		dirs, err := svc.ListDirectories(c.Request.Context(), p.Date)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]directoryOut, 0, len(dirs))
		for _, d := range dirs {
			out = append(out, directoryOut{ID: d.ID, Code: d.Code, Name: d.Name})
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /refbooks/:id/elements/?version=...
// Без version отдаются элементы текущей версии.
func ElementListHandler(svc *refbook.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			notFound(c)
			return
		}
		p := parseElementParams(c.Request.URL.Query())

		elems, err := svc.ListElementsForDirectory(c.Request.Context(), id, p.Version)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toElementsOut(elems))
	}
}

// GET /refbooks/:id/check_element/?code=...&value=...&version=...
func CheckElementHandler(svc *refbook.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			notFound(c)
			return
		}
		p := parseElementParams(c.Request.URL.Query())

		elems, err := svc.CheckElement(c.Request.Context(), id, p.Code, p.Value, p.Version)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toElementsOut(elems))
	}
}

// GET /healthz
func HealthHandler(svc *refbook.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := svc.Ping(ctx); err != nil {
			loggerFrom(c).WarnContext(ctx, "health check failed", "err", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
