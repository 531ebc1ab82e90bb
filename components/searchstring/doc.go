// Package searchstring exposes the search bar filter descriptors of a model
// over HTTP.
//
// The handler answers GET and HEAD requests such as
//
//	/api/search-string?model=App\Models\Document\Document&search=contact_id:5
//
// with {"data": [...filters]}. The locale comes from the locale parameter or
// the Accept-Language header.
package searchstring
