// Package optionsource serves select-widget options over HTTP so
// typeahead inputs can query large option lists remotely instead of
// embedding them in the page. It also adapts sources to the lazy value
// resolution the cacheable widgets use.
//
// The handler responds to GET and HEAD requests with JSON options,
// filtered by a search query and capped by a limit parameter.
package optionsource
