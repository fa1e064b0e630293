// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httperror provides the error type describing an HTTP application
failure: a response whose status code did not indicate success.

Use Check to turn a failing response into an error:

	resp, err := http.Get("https://example.com")
	...
	if err := httperror.Check(resp, status.DefaultConfig); err != nil {
		return err
	}

To attach failure details from the response body to the error, use
CheckWithBody. The body function is only called when the response
failed:

	err := httperror.CheckWithBody(ctx, resp, status.DefaultConfig,
		httperror.DecodeJSON[ProblemDetails](resp))
	var appErr *httperror.Error[ProblemDetails]
	if errors.As(err, &appErr) {
		log.Print(appErr.Body.Title)
	}

Code which needs to recognize an application failure without knowing
its body type can match the View interface instead:

	if v, ok := httperror.As(err); ok && v.IsTransient() {
		...
	}
*/
package httperror
