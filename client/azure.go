// Copyright (C) 2025 ConsentHound Contributors
//
// This file is part of ConsentHound.
//
// ConsentHound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ConsentHound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package client

import (
	"context"
	"fmt"

	"github.com/consenthound/consenthound/client/query"
	"github.com/consenthound/consenthound/client/rest"
	"github.com/consenthound/consenthound/panicrecovery"
	"github.com/consenthound/consenthound/pipeline"
)

// AzureResult carries either one collection item or the error that ended
// the stream. After an error result the channel is closed.
type AzureResult[T any] struct {
	Error error
	Ok    T
}

type azureListResponse[T any] struct {
	Context  string `json:"@odata.context,omitempty"`
	Count    int    `json:"@odata.count,omitempty"`
	NextLink string `json:"@odata.nextLink,omitempty"`
	Value    []T    `json:"value"`
}

// getAzureObjectList drives a paged Graph collection to completion, sending
// items in service order. Each call restarts from the initial request; there
// is no cross-call resume state. A page failure after retries are exhausted
// is sent as the final result.
func getAzureObjectList[T any](client rest.RestClient, ctx context.Context, path string, params query.GraphParams, out chan AzureResult[T]) {
	defer panicrecovery.PanicRecovery()
	defer close(out)

	var (
		errResult = func(err error) {
			pipeline.Send(ctx.Done(), out, AzureResult[T]{Error: err})
		}
		nextLink = ""
	)

	for {
		var list azureListResponse[T]

		requestPath := path
		values := params.AsValues()
		if nextLink != "" {
			requestPath = nextLink
			values = nil
		}

		response, err := client.Get(ctx, requestPath, values)
		if err != nil {
			errResult(fmt.Errorf("unable to list %s: %w", path, err))
			return
		}
		if err := rest.Decode(response.Body, &list); err != nil {
			errResult(fmt.Errorf("unable to decode response from %s: %w", path, err))
			return
		}

		for _, item := range list.Value {
			if !pipeline.Send(ctx.Done(), out, AzureResult[T]{Ok: item}) {
				return
			}
		}

		if list.NextLink == "" {
			return
		}
		nextLink = list.NextLink
	}
}

// getAzureObject fetches a single entity by path.
func getAzureObject[T any](client rest.RestClient, ctx context.Context, path string, params query.GraphParams) (T, error) {
	var value T

	response, err := client.Get(ctx, path, params.AsValues())
	if err != nil {
		return value, err
	}
	if err := rest.Decode(response.Body, &value); err != nil {
		return value, fmt.Errorf("unable to decode response from %s: %w", path, err)
	}
	return value, nil
}
