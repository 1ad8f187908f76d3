// Command feedscope is the command-line interface for querying the feed
// catalog: free-text questions, structured listing and ranking, constraint
// checks, and encoder/decoder parameter inspection.
package main
