/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package model

import "fmt"

func duplicateMachineErr(id int64) error {
	return fmt.Errorf("request: duplicate machine id %d", id)
}

func duplicateJobErr(id int64) error {
	return fmt.Errorf("request: duplicate job id %d", id)
}

func unknownDowntimeMachineErr(id int64) error {
	return fmt.Errorf("request: downtime references unknown machine id %d", id)
}
