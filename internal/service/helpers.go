package service

import "github.com/quocanhngo/travelmate/internal/model"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func orEmpty(s model.StringList) model.StringList {
	if s == nil {
		return model.StringList{}
	}
	return s
}
