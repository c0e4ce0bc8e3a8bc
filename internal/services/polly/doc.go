// Package polly wraps the AWS Polly speech synthesis API and carries the
// voice catalog used for cost estimation. The client requests raw PCM at
// the track's sample rate so replacement clips drop straight into the
// splice pipeline without transcoding.
package polly
