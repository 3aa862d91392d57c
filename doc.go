// Package arcanum provides a Go client for the Arcanum secret-management
// API: vaults, projects, secrets, tokens and users.
//
// Basic usage:
//
//	client, err := arcanum.New(apiKey, apiSecret,
//	    arcanum.WithBaseURL("https://arcanum.example.com/api"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vaults, err := client.ListVaults(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	secret, err := client.GetDecryptedSecretByName(ctx, "database", "Production")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if secret != nil {
//	    password, _ := secret.FieldValue("password")
//	    fmt.Println(password)
//	}
//
// Every operation performs its requests sequentially and never retries.
// Arguments are validated before anything is sent; a rejected argument
// yields an error matching [ErrInvalidArgument]. Remote failures are one of
// [*NotFoundError], [*UnauthorizedError], [*ValidationError],
// [*RateLimitError] or [*APIError]; use errors.As, errors.Is with the
// sentinels, or [KindOf] to branch on them:
//
//	var rl *arcanum.RateLimitError
//	if errors.As(err, &rl) && rl.RetryAfter != nil {
//	    time.Sleep(time.Duration(*rl.RetryAfter) * time.Second)
//	}
//
// Configuration can be read from the environment with package config and
// passed to [NewFromConfig].
package arcanum
