package contract

import (
	"sort"

	"github.com/CosmWasm/tinyjson"
	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"

	"defai_contracts/sdk"
)

// CallResult is the envelope every entry point hands back to the host.
// Encoded with tinyjson so the wasm build stays lean.
type CallResult struct {
	OK   bool
	Msg  string
	Data map[string]string
}

// MarshalTinyJSON writes the envelope with deterministic data key order.
func (r CallResult) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"ok":`)
	w.Bool(r.OK)
	if r.Msg != "" {
		w.RawString(`,"msg":`)
		w.String(r.Msg)
	}
	if len(r.Data) > 0 {
		w.RawString(`,"data":{`)
		keys := make([]string, 0, len(r.Data))
		for k := range r.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				w.RawByte(',')
			}
			w.String(k)
			w.RawByte(':')
			w.String(r.Data[k])
		}
		w.RawByte('}')
	}
	w.RawByte('}')
}

// UnmarshalTinyJSON reads an envelope back, used by tests and cross-contract readers.
func (r *CallResult) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "ok":
			r.OK = in.Bool()
		case "msg":
			r.Msg = in.String()
		case "data":
			if in.IsNull() {
				in.Skip()
				break
			}
			r.Data = map[string]string{}
			in.Delim('{')
			for !in.IsDelim('}') {
				k := in.String()
				in.WantColon()
				r.Data[k] = in.String()
				in.WantComma()
			}
			in.Delim('}')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

// ParseCallResult decodes a response envelope string.
func ParseCallResult(raw string) *CallResult {
	var r CallResult
	if err := tinyjson.Unmarshal([]byte(raw), &r); err != nil {
		sdk.Abort("failed to parse call result: " + err.Error())
	}
	return &r
}

// returnResult encodes the envelope. Data pairs come as key,value,key,value.
func returnResult(ok bool, msg string, kv ...string) *string {
	res := CallResult{OK: ok, Msg: msg}
	if len(kv) > 0 {
		res.Data = map[string]string{}
		for i := 0; i+1 < len(kv); i += 2 {
			res.Data[kv[i]] = kv[i+1]
		}
	}
	b, err := tinyjson.Marshal(res)
	if err != nil {
		sdk.Abort("failed to encode result: " + err.Error())
	}
	out := string(b)
	return &out
}

// okResult is the success shorthand used by most handlers.
func okResult(msg string, kv ...string) *string {
	return returnResult(true, msg, kv...)
}
