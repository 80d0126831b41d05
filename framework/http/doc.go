// Package http provides the JSON response helpers used by the scope
// inspection API.
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(snapshot)               // 200 {"data": snapshot}
//	res.NotFound("unknown scope")       // 404 {"message": "unknown scope"}
//	res.Error(http.StatusConflict, msg) // 409 {"message": msg}
//	res.Text(http.StatusOK, dump)       // 200 text/plain
package http
