package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// FieldResolver resolves one field. obj is the parent value (nil for root
// fields) and args are the coerced field arguments.
type FieldResolver func(ctx context.Context, obj any, args map[string]any) (any, error)

// Resolvers maps an object type name to its field resolvers. Fields without a
// resolver are read from a map[string]any parent by field name.
type Resolvers map[string]map[string]FieldResolver

// ExecutableSchema executes operations against a schema parsed from SDL and a
// Resolvers table, without generated code.
type ExecutableSchema struct {
	schema    *ast.Schema
	resolvers Resolvers
}

var _ graphql.ExecutableSchema = (*ExecutableSchema)(nil)

var jsonNull = json.RawMessage("null")

// NewExecutableSchema parses sdl and binds resolvers to it
func NewExecutableSchema(sdl string, resolvers Resolvers) (*ExecutableSchema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphqls", Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("graphql 스키마 로드 실패: %w", err)
	}

	for typeName, fields := range resolvers {
		def := schema.Types[typeName]
		if def == nil {
			return nil, fmt.Errorf("graphql: resolver for unknown type %s", typeName)
		}
		for fieldName := range fields {
			if def.Fields.ForName(fieldName) == nil {
				return nil, fmt.Errorf("graphql: resolver for unknown field %s.%s", typeName, fieldName)
			}
		}
	}

	return &ExecutableSchema{schema: schema, resolvers: resolvers}, nil
}

func (e *ExecutableSchema) Schema() *ast.Schema {
	return e.schema
}

func (e *ExecutableSchema) Complexity(typeName, fieldName string, childComplexity int, args map[string]interface{}) (int, bool) {
	return 0, false
}

func (e *ExecutableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	oc := graphql.GetOperationContext(ctx)

	var root *ast.Definition
	switch oc.Operation.Operation {
	case ast.Query:
		root = e.schema.Query
	case ast.Mutation:
		root = e.schema.Mutation
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}
	if root == nil {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "schema does not define %s", oc.Operation.Operation))
	}

	done := false
	return func(ctx context.Context) *graphql.Response {
		if done {
			return nil
		}
		done = true

		ec := &executionContext{ExecutableSchema: e, oc: oc}
		data, ok := ec.executeSelectionSet(ctx, root, nil, oc.Operation.SelectionSet, nil)
		if !ok {
			data = jsonNull
		}
		return &graphql.Response{Data: data, Errors: ec.errors}
	}
}

type executionContext struct {
	*ExecutableSchema
	oc     *graphql.OperationContext
	errors gqlerror.List
}

func (ec *executionContext) addError(ctx context.Context, path ast.Path, err error) {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		clone := *gqlErr
		clone.Path = path
		ec.errors = append(ec.errors, &clone)
		return
	}

	logger.FromContext(ctx).Debug("graphql 필드 오류", "path", path.String(), "error", err)
	ec.errors = append(ec.errors, &gqlerror.Error{Message: err.Error(), Path: path})
}

// executeSelectionSet writes the selected fields of obj as a JSON object.
// ok is false when a non-null field failed and the object must become null.
func (ec *executionContext) executeSelectionSet(ctx context.Context, objType *ast.Definition, obj any, sel ast.SelectionSet, path ast.Path) (json.RawMessage, bool) {
	fields := graphql.CollectFields(ec.oc, sel, []string{objType.Name})

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, _ := json.Marshal(field.Alias)
		buf.Write(key)
		buf.WriteByte(':')

		value, ok := ec.executeField(ctx, objType, obj, field, appendPath(path, ast.PathName(field.Alias)))
		if !ok {
			return nil, false
		}
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), true
}

func (ec *executionContext) executeField(ctx context.Context, objType *ast.Definition, obj any, field graphql.CollectedField, path ast.Path) (json.RawMessage, bool) {
	if field.Name == "__typename" {
		name, _ := json.Marshal(objType.Name)
		return name, true
	}
	if strings.HasPrefix(field.Name, "__") {
		ec.addError(ctx, path, fmt.Errorf("introspection is disabled"))
		return jsonNull, true
	}

	def := field.Definition
	if def == nil {
		def = objType.Fields.ForName(field.Name)
	}
	if def == nil {
		ec.addError(ctx, path, fmt.Errorf("unknown field %s.%s", objType.Name, field.Name))
		return jsonNull, true
	}

	value, err := ec.resolveField(ctx, objType.Name, obj, field)
	if err != nil {
		ec.addError(ctx, path, err)
		if def.Type.NonNull {
			return nil, false
		}
		return jsonNull, true
	}

	return ec.completeValue(ctx, def.Type, field.Selections, value, path)
}

func (ec *executionContext) resolveField(ctx context.Context, typeName string, obj any, field graphql.CollectedField) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error("graphql resolver panic",
				"field", typeName+"."+field.Name,
				"panic", fmt.Sprint(r),
			)
			value, err = nil, fmt.Errorf("internal system error")
		}
	}()

	if resolve, ok := ec.resolvers[typeName][field.Name]; ok {
		return resolve(ctx, obj, field.ArgumentMap(ec.oc.Variables))
	}
	if m, ok := obj.(map[string]any); ok {
		return m[field.Name], nil
	}
	return nil, fmt.Errorf("no resolver for %s.%s", typeName, field.Name)
}

// completeValue serialises value according to typ. ok is false when a
// non-null constraint was violated and the parent must become null.
func (ec *executionContext) completeValue(ctx context.Context, typ *ast.Type, sel ast.SelectionSet, value any, path ast.Path) (json.RawMessage, bool) {
	nullify := func() (json.RawMessage, bool) {
		if typ.NonNull {
			return nil, false
		}
		return jsonNull, true
	}

	if isNil(value) {
		if typ.NonNull {
			ec.addError(ctx, path, fmt.Errorf("must not be null"))
			return nil, false
		}
		return jsonNull, true
	}
	value = indirect(value)

	if typ.Elem != nil {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			ec.addError(ctx, path, fmt.Errorf("expected a list, got %T", value))
			return nullify()
		}

		var buf bytes.Buffer
		buf.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			item, ok := ec.completeValue(ctx, typ.Elem, sel, rv.Index(i).Interface(), appendPath(path, ast.PathIndex(i)))
			if !ok {
				return nullify()
			}
			buf.Write(item)
		}
		buf.WriteByte(']')
		return buf.Bytes(), true
	}

	def := ec.schema.Types[typ.NamedType]
	if def == nil {
		ec.addError(ctx, path, fmt.Errorf("unknown type %s", typ.NamedType))
		return nullify()
	}

	switch def.Kind {
	case ast.Scalar, ast.Enum:
		out, err := marshalScalar(typ.NamedType, value)
		if err != nil {
			ec.addError(ctx, path, err)
			return nullify()
		}
		return out, true
	case ast.Object:
		out, ok := ec.executeSelectionSet(ctx, def, value, sel, path)
		if !ok {
			return nullify()
		}
		return out, true
	default:
		ec.addError(ctx, path, fmt.Errorf("unsupported type kind %s for %s", def.Kind, def.Name))
		return nullify()
	}
}

func marshalScalar(typeName string, value any) (json.RawMessage, error) {
	switch typeName {
	case "ID":
		if s, ok := value.(string); ok {
			return json.Marshal(s)
		}
		return json.Marshal(fmt.Sprint(value))
	case "Time":
		t, ok := value.(time.Time)
		if !ok {
			return nil, fmt.Errorf("expected time.Time, got %T", value)
		}
		return json.Marshal(t.Format(time.RFC3339Nano))
	default:
		return json.Marshal(value)
	}
}

func appendPath(path ast.Path, elem ast.PathElement) ast.Path {
	next := make(ast.Path, 0, len(path)+1)
	next = append(next, path...)
	return append(next, elem)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// indirect dereferences pointers to scalars; object and list values are kept
// as-is so resolvers receive exactly what the parent returned.
func indirect(value any) any {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		elem := rv.Elem()
		switch elem.Kind() {
		case reflect.Struct, reflect.Map, reflect.Slice:
			if _, isTime := elem.Interface().(time.Time); !isTime {
				return rv.Interface()
			}
		}
		rv = elem
	}
	return rv.Interface()
}
