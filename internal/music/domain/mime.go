package domain

// mimeTypes maps container extensions to the Content-Type served by the
// stream relay. The cached format descriptor keeps the plain audio/<ext>
// string; this table is only for the proxy response.
var mimeTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"m4a":  "audio/mp4",
	"webm": "audio/webm",
	"ogg":  "audio/ogg",
}

// MIMEForExt returns the response MIME type for a container extension,
// defaulting to audio/mpeg for anything unrecognized.
func MIMEForExt(ext string) string {
	if m, ok := mimeTypes[ext]; ok {
		return m
	}
	return "audio/mpeg"
}
