// Package http provides Laravel-style JSON response helpers and a read-only
// HTTP view of the IoC container.
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.NoContent()               // 204
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//
// # Inspector
//
// Similar in spirit to `php artisan container:list`, served over HTTP:
//
//	inspector := gohttp.NewInspector(app.Container, registry)
//	inspector.Routes(router)
//
//	GET /_container/bindings
//	GET /_container/bindings/{abstract}
//	GET /_container/metrics
package http
