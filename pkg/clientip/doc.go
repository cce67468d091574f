// Package clientip resolves the originating client address of a request.
//
// Forwarding headers are only honoured when listed in the trusted set, since
// any client can send them. Behind Cloudflare use "CF-Connecting-IP"; behind
// nginx "X-Real-IP" or "X-Forwarded-For". With no trusted headers the TCP
// peer address is used.
//
//	ips := clientip.New(cfg.TrustedHeaders...)
//	r.Use(ips.Middleware)
//
//	ip := clientip.FromContext(ctx)
package clientip
