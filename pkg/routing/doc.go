// Package routing resolves named routes to URLs on top of gorilla/mux.
package routing
