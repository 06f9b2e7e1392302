// Package reddit implements feed.Feed over the public Reddit JSON API.
//
// The client pages through /r/<subreddit>/hot.json, loads comment trees from
// /comments/<id>.json and resolves "more" stubs through /api/morechildren.json
// until the whole thread is expanded. Calls are spaced by a minimum request
// interval and retried by resty on 429 and 5xx. Once retries are exhausted
// those statuses, like network errors, surface as services.ErrTransient so the
// poller can back off.
package reddit
