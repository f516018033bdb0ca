package server

import (
	"bytes"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/vmihailenco/msgpack/v5"
)

// runServer encodes the requests into an input stream, runs the server to
// EOF and returns a decoder over its responses.
func runServer(t *testing.T, requests []Request) *msgpack.Decoder {
	t.Helper()

	completer := suggest.NewCompleter()
	words := map[string]int{
		"the": 2000, "thou": 900, "thee": 850, "dog": 4, "dot": 2,
	}
	for w, n := range words {
		if err := completer.AddWord(w, n); err != nil {
			t.Fatalf("AddWord(%q): %v", w, err)
		}
	}

	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	srv := NewServerWith(completer, nil, config.DefaultConfig(), &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return msgpack.NewDecoder(&out)
}

func expectReady(t *testing.T, dec *msgpack.Decoder) {
	t.Helper()
	var status StatusResponse
	if err := dec.Decode(&status); err != nil {
		t.Fatalf("decode ready status: %v", err)
	}
	if status.Status != "ready" {
		t.Fatalf("first response status = %q, want ready", status.Status)
	}
}

func TestServerComplete(t *testing.T) {
	dec := runServer(t, []Request{
		{ID: "r1", Cmd: "complete", Prefix: "th", Limit: 2},
	})
	expectReady(t, dec)

	var resp CompletionResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "r1" || resp.Count != 2 {
		t.Fatalf("response = %+v, want id r1 with 2 suggestions", resp)
	}
	if resp.Suggestions[0].Word != "the" || resp.Suggestions[0].Rank != 1 {
		t.Errorf("first suggestion = %+v, want the at rank 1", resp.Suggestions[0])
	}
	if resp.Suggestions[1].Word != "thou" || resp.Suggestions[1].Rank != 2 {
		t.Errorf("second suggestion = %+v, want thou at rank 2", resp.Suggestions[1])
	}
}

func TestServerBest(t *testing.T) {
	dec := runServer(t, []Request{
		{ID: "b1", Cmd: "best", Prefix: "do"},
		{ID: "b2", Cmd: "best", Prefix: "zz"},
		{ID: "b3", Cmd: "best"},
	})
	expectReady(t, dec)

	var hit BestResponse
	if err := dec.Decode(&hit); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !hit.Found || hit.Word != "dog" {
		t.Errorf("best(do) = %+v, want dog", hit)
	}

	var miss BestResponse
	if err := dec.Decode(&miss); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if miss.Found || miss.Word != "" {
		t.Errorf("best(zz) = %+v, want found=false", miss)
	}

	// empty prefix means most common overall, not an error
	var overall BestResponse
	if err := dec.Decode(&overall); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !overall.Found || overall.Word != "the" {
		t.Errorf("best() = %+v, want the", overall)
	}
}

func TestServerLookupAndInsert(t *testing.T) {
	dec := runServer(t, []Request{
		{ID: "l1", Cmd: "lookup", Word: "thou"},
		{ID: "i1", Cmd: "insert", Word: ""},
		{ID: "i2", Cmd: "insert", Word: "dove", Frequency: 3},
		{ID: "l2", Cmd: "lookup", Word: "dove"},
	})
	expectReady(t, dec)

	var found LookupResponse
	if err := dec.Decode(&found); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !found.Found {
		t.Error("lookup(thou) should be found")
	}

	var bad ErrorResponse
	if err := dec.Decode(&bad); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if bad.ID != "i1" || bad.Code != 400 {
		t.Errorf("insert of empty word = %+v, want 400 error", bad)
	}

	var ok StatusResponse
	if err := dec.Decode(&ok); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ok.Status != "ok" {
		t.Errorf("insert(dove) status = %q, want ok", ok.Status)
	}

	var after LookupResponse
	if err := dec.Decode(&after); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !after.Found {
		t.Error("lookup(dove) after insert should be found")
	}
}

func TestServerTopAndWords(t *testing.T) {
	dec := runServer(t, []Request{
		{ID: "t1", Cmd: "top", K: 2},
		{ID: "w1", Cmd: "words"},
		{ID: "c1", Cmd: "count"},
	})
	expectReady(t, dec)

	var top CompletionResponse
	if err := dec.Decode(&top); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if top.Count != 2 || top.Suggestions[0].Word != "the" || top.Suggestions[1].Word != "thou" {
		t.Errorf("top(2) = %+v, want [the thou]", top.Suggestions)
	}

	var words WordsResponse
	if err := dec.Decode(&words); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if words.Count != 5 || words.Words[0] != "dog" {
		t.Errorf("words = %+v, want 5 words starting with dog", words)
	}

	var count CountResponse
	if err := dec.Decode(&count); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if count.Count != 5 {
		t.Errorf("count = %d, want 5", count.Count)
	}
	if count.Stats["maxFrequency"] != 2000 {
		t.Errorf("stats = %v, want maxFrequency 2000", count.Stats)
	}
}

func TestServerMore(t *testing.T) {
	// without a loader the command is a 503, not a crash
	dec := runServer(t, []Request{
		{ID: "m1", Cmd: "more", K: 1000},
	})
	expectReady(t, dec)

	var noLoader ErrorResponse
	if err := dec.Decode(&noLoader); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if noLoader.ID != "m1" || noLoader.Code != 503 {
		t.Errorf("more without loader = %+v, want 503", noLoader)
	}

	// with a loader attached the request is acknowledged
	completer := suggest.NewCompleter()
	loader := dictionary.NewLoader(t.TempDir(), 100, 1000, completer.AddWord)

	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	if err := enc.Encode(Request{ID: "m2", Cmd: "more", K: 1000}); err != nil {
		t.Fatalf("encode request: %v", err)
	}
	srv := NewServerWith(completer, loader, config.DefaultConfig(), &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	respDec := msgpack.NewDecoder(&out)
	expectReady(t, respDec)
	var ok StatusResponse
	if err := respDec.Decode(&ok); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ok.ID != "m2" || ok.Status != "ok" {
		t.Errorf("more with loader = %+v, want ok", ok)
	}
}

func TestServerRejectsBadRequests(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a' + byte(i%26)
	}

	dec := runServer(t, []Request{
		{ID: "u1", Cmd: "explode"},
		{ID: "p1", Cmd: "complete", Prefix: string(long)},
		{ID: "f1", Cmd: "complete", Prefix: "12345"},
	})
	expectReady(t, dec)

	var unknown ErrorResponse
	if err := dec.Decode(&unknown); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if unknown.Code != 400 {
		t.Errorf("unknown command = %+v, want 400", unknown)
	}

	var tooLong ErrorResponse
	if err := dec.Decode(&tooLong); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tooLong.Code != 400 {
		t.Errorf("overlong prefix = %+v, want 400", tooLong)
	}

	// filtered input yields an empty result, not an error
	var filtered CompletionResponse
	if err := dec.Decode(&filtered); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if filtered.Count != 0 {
		t.Errorf("filtered prefix returned %d suggestions, want 0", filtered.Count)
	}
}
