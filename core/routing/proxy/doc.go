// Package proxy provides the dispatch core of routable proxies.
//
// Go cannot implement an interface at run time, so a routable proxy of a contract is a
// small forwarding type that embeds [Proxy] and implements every contract method by
// routing it:
//
//	type SegmentedProxy struct {
//	    *proxy.Proxy[SegmentedContract]
//	}
//
//	func (p SegmentedProxy) SomeMethod() string {
//	    return p.Route("SomeMethod").SomeMethod()
//	}
//
// The forwarding type is registered with the host as a [Factory]. Callers that only know
// method names at run time use [Proxy.Invoke] instead.
package proxy
