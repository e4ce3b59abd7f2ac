package codec

// Convert structurally converts a value from one form to another, probing
// the source shape in the order map, list, string, bool, int, float.
// Unrecognized values and Empty convert to the destination's Empty.
func Convert[S, D any](src Ops[S], dst Ops[D], value S) D {
	if src.IsEmpty(value) {
		return dst.Empty()
	}
	if m, ok := src.MapValue(value).Value(); ok {
		entries := m.Entries()
		out := make([]MapEntry[D], 0, len(entries))
		for _, e := range entries {
			out = append(out, MapEntry[D]{
				Key:   Convert(src, dst, e.Key),
				Value: Convert(src, dst, e.Value),
			})
		}
		return dst.CreateMap(out)
	}
	if list, ok := src.ListValue(value).Value(); ok {
		out := make([]D, 0, len(list))
		for _, item := range list {
			out = append(out, Convert(src, dst, item))
		}
		return dst.CreateList(out)
	}
	if s, ok := src.StringValue(value).Value(); ok {
		return dst.CreateString(s)
	}
	if b, ok := src.BoolValue(value).Value(); ok {
		return dst.CreateBool(b)
	}
	if i, ok := src.IntValue(value).Value(); ok {
		return dst.CreateInt(i)
	}
	if f, ok := src.FloatValue(value).Value(); ok {
		return dst.CreateFloat(f)
	}
	return dst.Empty()
}
