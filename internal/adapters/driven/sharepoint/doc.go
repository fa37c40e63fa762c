// Package sharepoint implements driven.CategorySearcher against the
// SharePoint search REST API.
//
// Each category is one GET request to <site>/_api/search/query:
//
//   - List items: querytext '<query> ContentClass:STS_ListItem'
//   - Documents: querytext '<query> IsDocument:1'
//
// Both requests ask for metadata-free JSON, cap results at the configured row
// limit (20 by default) and disable duplicate trimming so every hit is shown.
//
// # Response Shape
//
// Rows live at PrimaryQueryResult.RelevantResults.Table.Rows, each with a
// Cells array of {Key, Value} pairs. A response that lacks any part of that
// path is treated as zero rows. Rows are decoded once into a typed record per
// category and then normalised into domain.SearchResult.
//
// # Errors
//
// A non-2xx status yields *domain.SearchAPIError. Failures to reach the
// endpoint or to decode its body yield *domain.TransportError.
//
// # Throttling
//
// Requests pass through a token bucket. A 429 or 503 answer carrying
// Retry-After opens a back-off window that later requests wait out. The failed
// request itself is not retried; the user's next search is the retry.
package sharepoint
