package usecases

import "context"

// DescriptionRenderer turns a markdown pack description into safe HTML.
type DescriptionRenderer interface {
	ToHTML(source string) (string, error)
}

// SalesCounter counts non-deleted recharges bought through a pack.
type SalesCounter interface {
	CountByPack(ctx context.Context, packID uint) (int64, error)
}
