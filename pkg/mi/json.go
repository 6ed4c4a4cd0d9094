package mi

import "encoding/json"

// JSON encodes the record in the line-oriented JSON shape consumed by
// tooling downstream of the mi-json command:
//
//	{"type":"result","token":1,"message":"done","payload":{...}}
//	{"type":"console","message":"text"}
//	{"type":"done"}
//
// Result and notify payloads become JSON objects; MI lists become arrays
// and c-strings become strings. Duplicate keys within one tuple keep the
// last value, matching encoding/json object semantics.
func (r Record) JSON() ([]byte, error) {
	obj := map[string]any{"type": r.Kind.String()}
	switch r.Kind {
	case KindResult, KindNotify:
		if r.HasToken {
			obj["token"] = r.Token
		} else {
			obj["token"] = nil
		}
		obj["message"] = r.Class
		if r.Payload != nil {
			obj["payload"] = r.Payload.interfaceMap()
		} else {
			obj["payload"] = nil
		}
	case KindDone:
		// type only
	default:
		obj["message"] = r.Message
	}
	return json.Marshal(obj)
}

func (d Dict) interfaceMap() map[string]any {
	out := make(map[string]any, len(d))
	for _, f := range d {
		out[f.Key] = f.Value.Interface()
	}
	return out
}

// Interface converts an MI value into plain Go data for JSON encoding.
func (v Value) Interface() any {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueList:
		out := make([]any, len(v.List))
		for i, item := range v.List {
			out[i] = item.Interface()
		}
		return out
	case ValueDict:
		return v.Dict.interfaceMap()
	}
	return nil
}
