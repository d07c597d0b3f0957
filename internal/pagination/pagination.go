// Package pagination computes page windows and navigation links over a collection.
package pagination

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"todoapi/internal/domain"
)

type Options struct {
	DefaultLimit int
	MaxLimit     int
}

// Request is 1-indexed; both values are always >= 1 once parsed.
type Request struct {
	Page  int
	Limit int
}

func (r Request) Offset() int { return (r.Page - 1) * r.Limit }

type Result[T any] struct {
	Items       []T     `json:"items"`
	TotalCount  int64   `json:"totalCount"`
	TotalPages  int64   `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	Limit       int     `json:"limit"`
	NextPage    *string `json:"nextPage"`
	PrevPage    *string `json:"prevPage"`
}

// Source is the part of a store that pagination needs.
type Source[T any] interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]T, error)
}

// ParseRequest reads raw page/limit query values. Empty values take defaults,
// non-integers and values below 1 are rejected, and limit is capped at MaxLimit.
func ParseRequest(pageRaw, limitRaw string, opts Options) (Request, error) {
	if opts.DefaultLimit < 1 {
		opts.DefaultLimit = 10
	}
	req := Request{Page: 1, Limit: opts.DefaultLimit}
	verr := &domain.ValidationError{}

	if s := strings.TrimSpace(pageRaw); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			verr.Add("page", "page must be a positive integer")
		} else {
			req.Page = n
		}
	}
	if s := strings.TrimSpace(limitRaw); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			verr.Add("limit", "limit must be a positive integer")
		} else {
			req.Limit = n
		}
	}
	if !verr.Empty() {
		return Request{}, verr
	}

	if opts.MaxLimit > 0 && req.Limit > opts.MaxLimit {
		req.Limit = opts.MaxLimit
	}
	if req.Page > MaxPage(req.Limit) {
		return Request{}, domain.NewValidationError("page", "page is out of range")
	}
	return req, nil
}

// MaxPage is the largest page whose offset and next link fit in an int.
func MaxPage(limit int) int {
	if limit < 1 {
		limit = 1
	}
	return (math.MaxInt - 1) / limit
}

// Paginate fetches one window from src and builds the navigation metadata.
func Paginate[T any](ctx context.Context, src Source[T], basePath string, req Request) (Result[T], error) {
	if req.Page < 1 || req.Limit < 1 || req.Page > MaxPage(req.Limit) {
		return Result[T]{}, fmt.Errorf("pagination: invalid request page=%d limit=%d", req.Page, req.Limit)
	}

	total, err := src.Count(ctx)
	if err != nil {
		return Result[T]{}, err
	}
	items := []T{}
	// Pages past the end are empty; the store is not asked for them.
	if int64(req.Page-1) < (total+int64(req.Limit)-1)/int64(req.Limit) {
		items, err = src.List(ctx, req.Offset(), req.Limit)
		if err != nil {
			return Result[T]{}, err
		}
		if items == nil {
			items = []T{}
		}
	}

	meta := Metadata(basePath, req, total)
	return Result[T]{
		Items:       items,
		TotalCount:  meta.TotalCount,
		TotalPages:  meta.TotalPages,
		CurrentPage: meta.CurrentPage,
		Limit:       meta.Limit,
		NextPage:    meta.NextPage,
		PrevPage:    meta.PrevPage,
	}, nil
}

// Metadata computes totals and links without touching a store.
func Metadata(basePath string, req Request, total int64) Result[struct{}] {
	limit := int64(req.Limit)
	totalPages := (total + limit - 1) / limit

	res := Result[struct{}]{
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: req.Page,
		Limit:       req.Limit,
	}
	if int64(req.Page) < totalPages {
		link := Link(basePath, req.Page+1, req.Limit)
		res.NextPage = &link
	}
	if req.Page > 1 {
		link := Link(basePath, req.Page-1, req.Limit)
		res.PrevPage = &link
	}
	return res
}

func Link(basePath string, page, limit int) string {
	return fmt.Sprintf("%s?page=%d&limit=%d", basePath, page, limit)
}
