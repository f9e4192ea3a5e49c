// Package testset provides the batched generation pipeline that turns
// extracted source records into a synthetic question/answer testset for
// RAG evaluation.
//
// This package supports chunked batch processing of records, an agent
// description derived from the source content, retry logic with jittered
// exponential backoff around the remote generator, and JSON/JSONL
// persistence of the accumulated result.
package testset
