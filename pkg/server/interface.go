/*
Package server implements msgpack IPC for the wordtrie engine.

The server speaks binary msgpack over stdin/stdout on a request/response
model. Every request carries an ID, a command, and the command's fields;
every response echoes the ID so clients can match them up.

Completion requests use mainly this structure:

	{"id": "req_001", "cmd": "complete", "p": "ame", "l": 24}

and the server responds with suggestions ranked by freq:

	{"id": "req_001", "s": [{"w": "amenity", "f": 512, "r": 1}], "c": 1, "t": 145}

The remaining commands cover the rest of the engine: "best" returns the
single most common word with a prefix (absence is reported with found=false,
never as an error), "lookup" tests exact membership, "insert" adds a word
with an optional frequency, "words" lists everything alphabetically, "top"
returns the k most common words, "count" reports dictionary statistics,
"more" asks the background loader for additional dictionary chunks (k extra
words) and "health" answers a liveness probe.

Malformed or invalid requests get a structured error response with a status
code; the server itself never crashes on well-formed input.
*/
package server

// Request is an incoming client message; Cmd selects the operation and
// the other fields are read per command.
type Request struct {
	ID        string `msgpack:"id"`
	Cmd       string `msgpack:"cmd"`
	Prefix    string `msgpack:"p,omitempty"`
	Word      string `msgpack:"w,omitempty"`
	Limit     int    `msgpack:"l,omitempty"`
	K         int    `msgpack:"k,omitempty"`
	Frequency int    `msgpack:"f,omitempty"`
}

// ResponseSuggestion - one ranked suggestion
type ResponseSuggestion struct {
	Word      string `msgpack:"w"`
	Frequency int    `msgpack:"f"`
	Rank      uint16 `msgpack:"r"`
}

// CompletionResponse - response for "complete" and "top"
type CompletionResponse struct {
	ID          string               `msgpack:"id"`
	Suggestions []ResponseSuggestion `msgpack:"s"`
	Count       int                  `msgpack:"c"`
	TimeTaken   int64                `msgpack:"t"`
}

// BestResponse - response for "best"; Found is false when no stored word
// has the prefix
type BestResponse struct {
	ID        string `msgpack:"id"`
	Word      string `msgpack:"w,omitempty"`
	Found     bool   `msgpack:"found"`
	TimeTaken int64  `msgpack:"t"`
}

// LookupResponse - response for "lookup"
type LookupResponse struct {
	ID    string `msgpack:"id"`
	Found bool   `msgpack:"found"`
}

// WordsResponse - response for "words"
type WordsResponse struct {
	ID    string   `msgpack:"id"`
	Words []string `msgpack:"words"`
	Count int      `msgpack:"c"`
}

// CountResponse - response for "count"
type CountResponse struct {
	ID    string         `msgpack:"id"`
	Count int            `msgpack:"c"`
	Stats map[string]int `msgpack:"stats"`
}

// StatusResponse - generic status reply ("insert", "more", "health", startup ready)
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id,omitempty"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
