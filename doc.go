// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httpretry provides an HTTP client whose retry loop is driven by
response classification and recovery decisions.

Every response is classified by status code as a success, a transient
failure or a permanent failure (package status). A failure becomes an
application error carrying the response status, header and body
(package httperror). For each failed attempt a recovery policy decides
whether to abort, retry now, or retry no earlier than the moment given
by the server's Retry-After header (packages retryafter and recovery).

Create a Client to begin making requests:

	client := &httpretry.Client{}
	e, err := client.Get("https://www.example.com")
	...
	var appErr *httperror.Error[[]byte]
	if errors.As(err, &appErr) {
		log.Printf("gave up after %d attempts: %s", e.Attempt+1, appErr.Status)
	}

Client.Do only retries plans whose method is idempotent. A POST is
attempted once unless sent with Client.DoUnsafe or Client.PostUnsafe.

To treat more statuses as transient, extend the default sets:

	client := &httpretry.Client{
		Statuses: status.NewConfig(status.Successes,
			status.TransientFailures.Union(status.NewSet(http.StatusConflict))),
	}

To tune the retry budget and backoff, set a policy from package retry:

	client := &httpretry.Client{
		RetryPolicy: retry.NewPolicy(retry.Times(3),
			retry.NewExpWaiter(250*time.Millisecond, 5*time.Second, time.Now())),
	}

The client waits for the longer of the retry policy's backoff and the
recovery action's minimum delay.

To hook into the retry loop, install handlers. Packages logging and
metrics provide ready-made handler groups:

	handlers := logging.Handlers(logger)
	metrics.New(prometheus.DefaultRegisterer).Install(handlers)
	client := &httpretry.Client{Handlers: handlers}
*/
package httpretry
