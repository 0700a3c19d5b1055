package router

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/pastevault/backend/pkg/xcontext"
)

func bindJSON(r *http.Request, req any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	if len(body) == 0 {
		return nil
	}

	return json.Unmarshal(body, req)
}

func bindQuery(r *http.Request, req any) error {
	v := reflect.ValueOf(req).Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("expected a struct request, got %s", v.Kind())
	}

	query := r.URL.Query()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := queryName(field)
		if name == "" || !query.Has(name) {
			continue
		}

		raw := query.Get(name)
		target := v.Field(i)
		switch target.Kind() {
		case reflect.String:
			target.SetString(raw)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("invalid boolean for %s: %w", name, err)
			}
			target.SetBool(b)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid number for %s: %w", name, err)
			}
			target.SetInt(n)
		default:
			return fmt.Errorf("unsupported query field %s", name)
		}
	}

	return nil
}

func queryName(field reflect.StructField) string {
	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return field.Name
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}

	return name
}

// bindSession fills fields tagged `session:"name"` from the caller's session.
// The "delete" option removes the value as it is read, so replayed requests
// see an empty field. The session is saved back immediately.
func bindSession(ctx context.Context, req any) error {
	v := reflect.ValueOf(req).Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("expected a struct request, got %s", v.Kind())
	}

	tagged := false
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if _, ok := t.Field(i).Tag.Lookup("session"); ok {
			tagged = true
			break
		}
	}

	if !tagged {
		return nil
	}

	store := xcontext.SessionStore(ctx)
	session := store.Get(xcontext.HTTPRequest(ctx))

	modified := false
	for i := 0; i < t.NumField(); i++ {
		tag, ok := t.Field(i).Tag.Lookup("session")
		if !ok {
			continue
		}

		name, option, _ := strings.Cut(tag, ",")
		if value, ok := session.Values[name].(string); ok {
			v.Field(i).SetString(value)
		}

		if option == "delete" {
			delete(session.Values, name)
			modified = true
		}
	}

	if modified {
		return store.Save(xcontext.HTTPWriter(ctx), session)
	}

	return nil
}
