package httpapi

import "net/http"

// corsHeaders — разрешительные CORS-заголовки, которые контракт требует на
// каждом ответе.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
}

// CORSHeaders возвращает копию разрешительных заголовков; используется
// также lambda-адаптером.
func CORSHeaders() map[string]string {
	result := make(map[string]string, len(corsHeaders))
	for k, v := range corsHeaders {
		result[k] = v
	}
	return result
}

// PermissiveCORS добавляет разрешительные заголовки на каждый ответ и
// закрывает preflight-запросы без передачи дальше.
func PermissiveCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range corsHeaders {
			w.Header().Set(k, v)
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
