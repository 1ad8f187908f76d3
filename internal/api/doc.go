// Package api defines the feed query service and its wire types. FeedService
// is the single entry point the HTTP server, CLI, and query engine all call;
// the DTOs here are what crosses process boundaries as JSON.
package api
