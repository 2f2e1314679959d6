package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	gqlgen "github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
	"go.uber.org/zap"
)

// Execute parses, validates and runs a GraphQL request against the schema.
// Request errors come back without data; field errors null the field and
// are listed with its path.
func (r *Resolver) Execute(ctx context.Context, params *gqlgen.RawParams) *gqlgen.Response {
	if params == nil || params.Query == "" {
		return &gqlgen.Response{Errors: gqlerror.List{gqlerror.Errorf("query is required")}}
	}

	doc, errs := gqlparser.LoadQuery(schema, params.Query)
	if len(errs) > 0 {
		return &gqlgen.Response{Errors: errs}
	}

	op := doc.Operations.ForName(params.OperationName)
	if op == nil {
		if params.OperationName != "" {
			return &gqlgen.Response{Errors: gqlerror.List{gqlerror.Errorf("operation %q not found", params.OperationName)}}
		}
		return &gqlgen.Response{Errors: gqlerror.List{gqlerror.Errorf("operation name is required")}}
	}

	var root *ast.Definition
	switch op.Operation {
	case ast.Query:
		root = schema.Query
	case ast.Mutation:
		root = schema.Mutation
	default:
		return &gqlgen.Response{Errors: gqlerror.List{gqlerror.Errorf("%s operations are not supported", op.Operation)}}
	}

	vars, err := validator.VariableValues(schema, op, params.Variables)
	if err != nil {
		return &gqlgen.Response{Errors: gqlerror.List{toGQLError(err, nil)}}
	}

	ex := &execution{doc: doc, vars: vars}
	data, nulled := ex.executeRoot(ctx, r, root, op.SelectionSet)

	resp := &gqlgen.Response{Errors: ex.errors}
	if nulled {
		resp.Data = json.RawMessage("null")
		return resp
	}
	raw, err := json.Marshal(data)
	if err != nil {
		r.Logger.Ctx(ctx).Error("Failed to encode GraphQL data", zap.Error(err))
		resp.Errors = append(resp.Errors, gqlerror.Errorf("encode response: %s", err))
		resp.Data = json.RawMessage("null")
		return resp
	}
	resp.Data = raw
	return resp
}

type execution struct {
	doc    *ast.QueryDocument
	vars   map[string]any
	errors gqlerror.List
}

// executeRoot resolves the root fields in order. It reports true when a
// failed non-null root field nulls the whole data object.
func (ex *execution) executeRoot(ctx context.Context, r *Resolver, root *ast.Definition, sel ast.SelectionSet) (object, bool) {
	var out object
	nulled := false

	for _, field := range ex.collectFields(sel, root.Name) {
		key := responseKey(field)
		if field.Name == "__typename" {
			out = append(out, entry{key, root.Name})
			continue
		}

		value, err := r.resolveRoot(ctx, root.Name, field.Name, field.ArgumentMap(ex.vars))
		if err != nil {
			r.Logger.Ctx(ctx).Warn("GraphQL field failed",
				zap.String("field", root.Name+"."+field.Name),
				zap.Error(err),
			)
			ex.errors = append(ex.errors, toGQLError(err, ast.Path{ast.PathName(key)}))
			if def := root.Fields.ForName(field.Name); def != nil && def.Type.NonNull {
				nulled = true
			}
			out = append(out, entry{key, nil})
			continue
		}

		generic, err := toGeneric(value)
		if err != nil {
			ex.errors = append(ex.errors, toGQLError(err, ast.Path{ast.PathName(key)}))
			out = append(out, entry{key, nil})
			continue
		}
		out = append(out, entry{key, ex.complete(field.SelectionSet, generic)})
	}
	return out, nulled
}

// complete projects a resolved value onto the selection set. Values without
// a selection set are scalars and pass through unchanged.
func (ex *execution) complete(sel ast.SelectionSet, v any) any {
	if len(sel) == 0 {
		return v
	}
	switch v := v.(type) {
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ex.complete(sel, item)
		}
		return out
	case map[string]any:
		typename, _ := v["__typename"].(string)
		var out object
		for _, field := range ex.collectFields(sel, typename) {
			key := responseKey(field)
			if field.Name == "__typename" {
				out = append(out, entry{key, typename})
				continue
			}
			out = append(out, entry{key, ex.complete(field.SelectionSet, v[field.Name])})
		}
		return out
	default:
		return v
	}
}

// collectFields flattens fragments that apply to typename, merging fields
// that share a response key.
func (ex *execution) collectFields(sel ast.SelectionSet, typename string) []*ast.Field {
	var fields []*ast.Field
	index := map[string]int{}

	var walk func(ast.SelectionSet)
	walk = func(sel ast.SelectionSet) {
		for _, s := range sel {
			switch s := s.(type) {
			case *ast.Field:
				if !ex.included(s.Directives) {
					continue
				}
				key := responseKey(s)
				if i, ok := index[key]; ok {
					merged := *fields[i]
					merged.SelectionSet = append(append(ast.SelectionSet{}, merged.SelectionSet...), s.SelectionSet...)
					fields[i] = &merged
					continue
				}
				index[key] = len(fields)
				fields = append(fields, s)
			case *ast.InlineFragment:
				if ex.included(s.Directives) && applies(s.TypeCondition, typename) {
					walk(s.SelectionSet)
				}
			case *ast.FragmentSpread:
				frag := ex.doc.Fragments.ForName(s.Name)
				if frag != nil && ex.included(s.Directives) && applies(frag.TypeCondition, typename) {
					walk(frag.SelectionSet)
				}
			}
		}
	}
	walk(sel)
	return fields
}

func (ex *execution) included(directives ast.DirectiveList) bool {
	if d := directives.ForName("skip"); d != nil {
		if skip, _ := d.ArgumentMap(ex.vars)["if"].(bool); skip {
			return false
		}
	}
	if d := directives.ForName("include"); d != nil {
		if include, _ := d.ArgumentMap(ex.vars)["if"].(bool); !include {
			return false
		}
	}
	return true
}

// applies reports whether a fragment on condition covers typename.
func applies(condition, typename string) bool {
	if condition == "" || condition == typename {
		return true
	}
	def := schema.Types[condition]
	if def == nil {
		return false
	}
	for _, possible := range schema.GetPossibleTypes(def) {
		if possible.Name == typename {
			return true
		}
	}
	return false
}

func responseKey(f *ast.Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

func (r *Resolver) resolveRoot(ctx context.Context, typename, name string, args map[string]any) (any, error) {
	switch typename + "." + name {
	case "Query.health":
		return r.Query().Health(ctx)
	case "Query.regions":
		return r.Query().Regions(ctx)
	case "Query.families":
		return r.Query().Families(ctx)
	case "Query.family":
		familyName, _ := args["name"].(string)
		f, err := r.Query().Family(ctx, familyName)
		if f == nil {
			return nil, err
		}
		return f, err
	case "Mutation.call":
		family, _ := args["family"].(string)
		operation, _ := args["operation"].(string)
		params, err := paramsFromInput(args["params"])
		if err != nil {
			return nil, err
		}
		return r.Mutation().Call(ctx, family, operation, params)
	case "Mutation.fetchReports":
		date, _ := args["date"].(string)
		operations, err := stringsFromInput(args["operations"])
		if err != nil {
			return nil, err
		}
		return r.Mutation().FetchReports(ctx, date, operations)
	default:
		return nil, fmt.Errorf("no resolver for %s.%s", typename, name)
	}
}

// toGeneric turns a resolved model into maps, slices and scalars so the
// projection can walk it by field name.
func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func toGQLError(err error, path ast.Path) *gqlerror.Error {
	if gerr, ok := err.(*gqlerror.Error); ok {
		if path != nil {
			gerr.Path = path
		}
		return gerr
	}
	return &gqlerror.Error{Err: err, Message: err.Error(), Path: path}
}

// object is a JSON object that keeps its keys in selection order.
type object []entry

type entry struct {
	key   string
	value any
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
