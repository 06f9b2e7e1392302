// Package feed defines the discussion-feed surface the poller consumes.
//
// Post is a tagged variant: Kind says whether it is a submission or a comment
// and the accessors behave the same for both, so the pipeline never inspects
// concrete types. Author and body reads return services.ErrFieldUnavailable
// for deleted or removed content, which the poller treats as "skip this post".
//
// The reddit subpackage implements Feed over the public Reddit JSON API.
package feed
