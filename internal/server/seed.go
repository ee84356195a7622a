package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SaaiAravindhRaja/CodeCoach/internal/logger"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/models"
	"github.com/SaaiAravindhRaja/CodeCoach/internal/repositories"

	"go.uber.org/zap"
)

type seedProblem struct {
	Title       string
	Slug        string
	Difficulty  string
	Description string
	StarterCode map[string]string
	TestCases   []models.TestCase
	Hints       []string
}

var seedProblems = []seedProblem{
	{
		Title:      "Two Sum",
		Slug:       "two-sum",
		Difficulty: models.DifficultyEasy,
		Description: "Given an array of integers `nums` and an integer `target`, return the indices of the two numbers that add up to `target`.\n\n" +
			"You may assume that each input has exactly one solution, and you may not use the same element twice.\n\n" +
			"**Example 1:**\n```\nInput: nums = [2,7,11,15], target = 9\nOutput: [0,1]\nExplanation: nums[0] + nums[1] = 2 + 7 = 9\n```\n\n" +
			"**Example 2:**\n```\nInput: nums = [3,2,4], target = 6\nOutput: [1,2]\n```\n\n" +
			"**Constraints:**\n- 2 <= nums.length <= 10^4\n- -10^9 <= nums[i] <= 10^9\n- Only one valid answer exists\n\n" +
			"**Follow-up:** Can you solve it in O(n) time complexity?",
		StarterCode: map[string]string{
			"python":     "def two_sum(nums: list[int], target: int) -> list[int]:\n    \"\"\"\n    Find two numbers that add up to target.\n    Return their indices.\n    \"\"\"\n    # Your code here\n    pass",
			"javascript": "function twoSum(nums, target) {\n    // Your code here\n\n}",
		},
		TestCases: []models.TestCase{
			{Input: map[string]any{"nums": []int{2, 7, 11, 15}, "target": 9}, Expected: []int{0, 1}},
			{Input: map[string]any{"nums": []int{3, 2, 4}, "target": 6}, Expected: []int{1, 2}},
			{Input: map[string]any{"nums": []int{3, 3}, "target": 6}, Expected: []int{0, 1}},
		},
		Hints: []string{
			"Think about what complement you need for each number to reach the target",
			"A hash map can help you look up values in O(1) time",
			"You can store each number's index as you iterate through the array",
		},
	},
	{
		Title:      "Valid Parentheses",
		Slug:       "valid-parentheses",
		Difficulty: models.DifficultyEasy,
		Description: "Given a string `s` containing just the characters `'('`, `')'`, `'{'`, `'}'`, `'['`, and `']'`, determine if the input string is valid.\n\n" +
			"A string is valid if:\n1. Open brackets must be closed by the same type of brackets.\n2. Open brackets must be closed in the correct order.\n3. Every close bracket has a corresponding open bracket of the same type.\n\n" +
			"**Example 1:**\n```\nInput: s = \"()\"\nOutput: true\n```\n\n" +
			"**Example 2:**\n```\nInput: s = \"()[]{}\"\nOutput: true\n```\n\n" +
			"**Example 3:**\n```\nInput: s = \"(]\"\nOutput: false\n```\n\n" +
			"**Constraints:**\n- 1 <= s.length <= 10^4\n- s consists of parentheses only: `()[]{}`",
		StarterCode: map[string]string{
			"python":     "def is_valid(s: str) -> bool:\n    \"\"\"\n    Check if the parentheses string is valid.\n    \"\"\"\n    # Your code here\n    pass",
			"javascript": "function isValid(s) {\n    // Your code here\n\n}",
		},
		TestCases: []models.TestCase{
			{Input: map[string]any{"s": "()"}, Expected: true},
			{Input: map[string]any{"s": "()[]{}"}, Expected: true},
			{Input: map[string]any{"s": "(]"}, Expected: false},
			{Input: map[string]any{"s": "([)]"}, Expected: false},
			{Input: map[string]any{"s": "{[]}"}, Expected: true},
		},
		Hints: []string{
			"A stack data structure is perfect for matching pairs",
			"Push opening brackets onto the stack",
			"When you see a closing bracket, check if it matches the top of the stack",
		},
	},
	{
		Title:      "Binary Search",
		Slug:       "binary-search",
		Difficulty: models.DifficultyEasy,
		Description: "Given a sorted array of integers `nums` and a target value, return the index of `target` if it exists. If not, return -1.\n\n" +
			"You must write an algorithm with O(log n) runtime complexity.\n\n" +
			"**Example 1:**\n```\nInput: nums = [-1,0,3,5,9,12], target = 9\nOutput: 4\nExplanation: 9 exists in nums at index 4\n```\n\n" +
			"**Example 2:**\n```\nInput: nums = [-1,0,3,5,9,12], target = 2\nOutput: -1\nExplanation: 2 does not exist in nums\n```\n\n" +
			"**Constraints:**\n- 1 <= nums.length <= 10^4\n- All integers in nums are unique\n- nums is sorted in ascending order\n- -10^4 < nums[i], target < 10^4",
		StarterCode: map[string]string{
			"python":     "def binary_search(nums: list[int], target: int) -> int:\n    \"\"\"\n    Search for target in sorted array.\n    Return index if found, -1 otherwise.\n    \"\"\"\n    # Your code here\n    pass",
			"javascript": "function binarySearch(nums, target) {\n    // Your code here\n\n}",
		},
		TestCases: []models.TestCase{
			{Input: map[string]any{"nums": []int{-1, 0, 3, 5, 9, 12}, "target": 9}, Expected: 4},
			{Input: map[string]any{"nums": []int{-1, 0, 3, 5, 9, 12}, "target": 2}, Expected: -1},
			{Input: map[string]any{"nums": []int{5}, "target": 5}, Expected: 0},
		},
		Hints: []string{
			"Use two pointers: left and right, starting at array boundaries",
			"Calculate middle index and compare with target",
			"If target is smaller, search left half. If larger, search right half",
		},
	},
	{
		Title:      "FizzBuzz",
		Slug:       "fizzbuzz",
		Difficulty: models.DifficultyEasy,
		Description: "Given an integer `n`, return a string array `answer` (1-indexed) where:\n\n" +
			"- `answer[i] == \"FizzBuzz\"` if i is divisible by 3 and 5\n- `answer[i] == \"Fizz\"` if i is divisible by 3\n- `answer[i] == \"Buzz\"` if i is divisible by 5\n- `answer[i] == i` (as a string) if none of the above conditions are true\n\n" +
			"**Example 1:**\n```\nInput: n = 3\nOutput: [\"1\",\"2\",\"Fizz\"]\n```\n\n" +
			"**Example 2:**\n```\nInput: n = 5\nOutput: [\"1\",\"2\",\"Fizz\",\"4\",\"Buzz\"]\n```\n\n" +
			"**Constraints:**\n- 1 <= n <= 10^4\n\n" +
			"**Follow-up:** Can you solve it without using if-else statements for each condition?",
		StarterCode: map[string]string{
			"python":     "def fizz_buzz(n: int) -> list[str]:\n    \"\"\"\n    Generate FizzBuzz sequence from 1 to n.\n    \"\"\"\n    # Your code here\n    pass",
			"javascript": "function fizzBuzz(n) {\n    // Your code here\n\n}",
		},
		TestCases: []models.TestCase{
			{Input: map[string]any{"n": 3}, Expected: []string{"1", "2", "Fizz"}},
			{Input: map[string]any{"n": 5}, Expected: []string{"1", "2", "Fizz", "4", "Buzz"}},
			{Input: map[string]any{"n": 15}, Expected: []string{"1", "2", "Fizz", "4", "Buzz", "Fizz", "7", "8", "Fizz", "Buzz", "11", "Fizz", "13", "14", "FizzBuzz"}},
		},
		Hints: []string{
			"Check divisibility by 15 first (3 AND 5), then by 3, then by 5",
			"Use the modulo operator (%) to check divisibility",
			"Consider building the string by concatenating 'Fizz' and 'Buzz' separately",
		},
	},
}

// SeedProblems inserts the built-in problem set when the problems table is
// empty. Reruns are no-ops.
func SeedProblems(ctx context.Context, problemRepo repositories.ProblemRepository) error {
	count, err := problemRepo.CountProblems(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, sp := range seedProblems {
		starterCode, err := json.Marshal(sp.StarterCode)
		if err != nil {
			return fmt.Errorf("failed to marshal starter code for %s: %w", sp.Slug, err)
		}
		testCases, err := json.Marshal(sp.TestCases)
		if err != nil {
			return fmt.Errorf("failed to marshal test cases for %s: %w", sp.Slug, err)
		}
		hints, err := json.Marshal(sp.Hints)
		if err != nil {
			return fmt.Errorf("failed to marshal hints for %s: %w", sp.Slug, err)
		}

		problem := models.Problem{
			Title:          sp.Title,
			Slug:           sp.Slug,
			Difficulty:     sp.Difficulty,
			Description:    sp.Description,
			StarterCodeRaw: starterCode,
			TestCasesRaw:   testCases,
			HintsRaw:       hints,
		}

		if err := problemRepo.InsertProblem(ctx, &problem); err != nil {
			return err
		}
	}

	logger.Log.Info("Seeded problem set", zap.Int("count", len(seedProblems)))
	return nil
}
