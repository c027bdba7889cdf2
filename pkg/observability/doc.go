/*
Package observability provides lifecycle hooks for auditing session store activity.

LoggingHooks writes one structured log record per load, save, destroy and regenerate.
Combine fans a single event out to several hook sets, so logging can sit next to
application-specific hooks:

	hooks := observability.Combine(
		observability.LoggingHooks(logger),
		domain.LifecycleHooks{OnDestroy: revokeTokens},
	)
	svc, err := glint.Open(cfg, glint.WithLifecycleHooks(hooks))
*/
package observability
