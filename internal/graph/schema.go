package graph

import (
	_ "embed"
	"fmt"
)

//go:embed schema.graphqls
var schemaSDL string

// NewSchema builds the application schema backed by resolver
func NewSchema(resolver *Resolver) (*ExecutableSchema, error) {
	es, err := NewExecutableSchema(schemaSDL, resolver.Resolvers())
	if err != nil {
		return nil, fmt.Errorf("graphql 스키마 생성 실패: %w", err)
	}
	return es, nil
}
