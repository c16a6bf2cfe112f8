// Package httpapi serves the document query interface over HTTP.
//
// Routes:
//
//	GET  /documents?since=&limit=&last_indexed=  documents modified at or after since
//	GET  /documents/{id}?last_indexed=           a single document
//	GET  /documents/{id}/access?roles=&years=&admin=
//	GET  /status                                 current or last sync run
//	POST /sync                                   run every connector once
//	GET  /healthz
//
// since and last_indexed accept unix seconds or RFC 3339. When last_indexed
// is given each document carries is_new: created after that time, or at all
// when it is 0. roles and years are comma separated, as stored in the
// identity system's profile fields.
package httpapi
