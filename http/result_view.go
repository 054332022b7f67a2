package http

import (
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"fincalc/finance"
)

// resultView is a calculator result flattened for display: scalar fields
// become summary items and slices of records become tables.
type resultView struct {
	Items       []resultItem
	Tables      []resultTable
	Explanation string
}

type resultItem struct {
	Label string
	Value string
}

type resultTable struct {
	Title   string
	Columns []string
	Rows    [][]string
}

var (
	percentKeys = map[string]bool{
		"apr": true, "ltv": true, "cumulative_rate": true, "percent_change": true,
		"annual_rate": true, "current_rate": true, "new_rate": true, "pmi_rate": true,
		"sales_tax_rate": true, "inflation_rate": true, "annual_return": true, "withdrawal_rate": true,
	}
	plainKeys = map[string]bool{"percent_of": true, "score": true, "value": true, "percent": true, "from": true, "to": true}
	acronyms  = map[string]string{"apr": "APR", "ltv": "LTV", "hoa": "HOA", "pmi": "PMI"}
)

type formatter struct {
	locale   string
	currency string
}

func (f formatter) money(v float64) string {
	return finance.DisplayCurrency(v, f.locale, f.currency)
}

func (f formatter) float(key string, v float64) string {
	switch {
	case percentKeys[key]:
		return strconv.FormatFloat(v, 'f', -1, 64) + "%"
	case plainKeys[key]:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case v == math.Trunc(v) && countKey(key):
		return strconv.FormatInt(int64(v), 10)
	default:
		return f.money(v)
	}
}

// countKey reports keys that hold whole counts rather than money.
func countKey(key string) bool {
	for _, w := range strings.Split(key, "_") {
		switch w {
		case "month", "months", "year", "years", "term", "age":
			return true
		}
	}
	return false
}

func (f formatter) scalar(key string, v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return f.float(key, v.Float()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Bool:
		if v.Bool() {
			return "Yes", true
		}
		return "No", true
	case reflect.String:
		return v.String(), true
	}
	return "", false
}

func humanize(key string) string {
	return words(key, true)
}

func words(key string, capitalize bool) string {
	parts := strings.Split(key, "_")
	for i, w := range parts {
		if a, ok := acronyms[w]; ok {
			parts[i] = a
		} else if i == 0 && capitalize && w != "" {
			parts[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(parts, " ")
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name
}

// newResultView walks a result struct (or pointer to one).
func (f formatter) newResultView(result any) *resultView {
	view := &resultView{}
	f.collect(view, "", reflect.ValueOf(result))
	return view
}

func (f formatter) collect(view *resultView, prefix string, v reflect.Value) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := jsonName(field)
		if !field.IsExported() || key == "" {
			continue
		}
		fv := v.Field(i)
		label := humanize(key)
		if prefix != "" {
			label = prefix + ": " + words(key, false)
		}

		if key == "explanation" && fv.Kind() == reflect.String {
			view.Explanation = fv.String()
			continue
		}

		switch fv.Kind() {
		case reflect.Pointer:
			if fv.IsNil() {
				continue
			}
			if fv.Elem().Kind() == reflect.Struct {
				f.collect(view, label, fv)
				continue
			}
			if s, ok := f.scalar(key, fv.Elem()); ok {
				view.Items = append(view.Items, resultItem{Label: label, Value: s})
			}
		case reflect.Struct:
			f.collect(view, label, fv)
		case reflect.Slice:
			if table, ok := f.table(label, fv); ok {
				view.Tables = append(view.Tables, table)
			}
		default:
			if s, ok := f.scalar(key, fv); ok {
				view.Items = append(view.Items, resultItem{Label: label, Value: s})
			}
		}
	}
}

// table renders a slice of structs. Non-scalar columns are left out.
func (f formatter) table(title string, v reflect.Value) (resultTable, bool) {
	elem := v.Type().Elem()
	if elem.Kind() != reflect.Struct || v.Len() == 0 {
		return resultTable{}, false
	}

	var cols []int
	table := resultTable{Title: title}
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		key := jsonName(field)
		if !field.IsExported() || key == "" {
			continue
		}
		switch field.Type.Kind() {
		case reflect.Slice, reflect.Struct, reflect.Map, reflect.Pointer:
			continue
		}
		cols = append(cols, i)
		table.Columns = append(table.Columns, humanize(key))
	}

	for r := 0; r < v.Len(); r++ {
		row := make([]string, 0, len(cols))
		for _, i := range cols {
			s, _ := f.scalar(jsonName(elem.Field(i)), v.Index(r).Field(i))
			row = append(row, s)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, true
}

// summarize formats the scalar entries of a decoded JSON object, sorted
// by key.
func (f formatter) summarize(m map[string]any) []resultItem {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		switch v.(type) {
		case float64, bool, string:
			if k != "explanation" {
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	items := make([]resultItem, 0, len(keys))
	for _, k := range keys {
		var s string
		switch v := m[k].(type) {
		case float64:
			s = f.float(k, v)
		case bool:
			s = "No"
			if v {
				s = "Yes"
			}
		case string:
			s = v
		}
		items = append(items, resultItem{Label: humanize(k), Value: s})
	}
	return items
}
