package client

import "github.com/jassmeen122/techmentorai/core"

// Rows decodes a multi-document envelope into row structs.
//
// Example:
//
//	badges := client.Rows[tables.Badge](c.From(tables.Badges).Execute(ctx))
func Rows[T any](env core.Envelope[[]core.Document]) core.Envelope[[]T] {
	if env.Error != nil {
		return core.Envelope[[]T]{Error: env.Error}
	}
	rowList := make([]T, 0, len(env.Data))
	for _, doc := range env.Data {
		var row T
		if err := core.DecodeDocument(doc, &row); err != nil {
			return core.Fail[[]T](err)
		}
		rowList = append(rowList, row)
	}
	return core.Ok(rowList)
}

// Row decodes a single-document envelope into a row struct.
func Row[T any](env core.Envelope[core.Document]) core.Envelope[T] {
	if env.Error != nil {
		return core.Envelope[T]{Error: env.Error}
	}
	var row T
	if err := core.DecodeDocument(env.Data, &row); err != nil {
		return core.Fail[T](err)
	}
	return core.Ok(row)
}
