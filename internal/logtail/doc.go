// Package logtail reads the tail of the bookbasket log file.
//
// # Reading
//
// Read keeps a ring of the last maxLines lines while scanning the file once,
// so memory stays O(maxLines) however large the log grows. Lines come back in
// file order.
//
// # Parsing
//
// The log is written by slog's text handler:
//
//	time=2026-10-18T09:12:44.120+02:00 level=WARN msg="action rejected" kind=insufficient_stock action=book/addBookToBasket item_id=6 error="..."
//
// Parse decodes such a line with go-logfmt into a Record. Rejections filters the tail down to
// the records the basket reducer writes for rejected actions; the UI shows
// them in its rejection history overlay.
package logtail
