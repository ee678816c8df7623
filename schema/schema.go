// Package schema has configs, models and shared constants for all parts of shotline.
package schema
